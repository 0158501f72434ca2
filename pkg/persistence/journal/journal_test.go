package journal

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lightstation/pkg/game/lightswitch"
)

func openTemp(t *testing.T) (*Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	return j, path
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}

func TestJournal_LastStatesKeepsNewest(t *testing.T) {
	j, _ := openTemp(t)
	defer j.Close()
	ctx := context.Background()

	j.SwitchChanged(lightswitch.StateChange{SwitchID: "S1", On: false})
	j.SwitchChanged(lightswitch.StateChange{SwitchID: "S2", On: false})
	j.SwitchChanged(lightswitch.StateChange{SwitchID: "S1", On: true})
	require.NoError(t, j.Flush(ctx))

	states, err := j.LastStates(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"S1": true, "S2": false}, states)
}

func TestJournal_SurvivesReopen(t *testing.T) {
	j, path := openTemp(t)
	j.SwitchChanged(lightswitch.StateChange{SwitchID: "S1", On: false})
	require.NoError(t, j.Close())

	again, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer again.Close()

	states, err := again.LastStates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"S1": false}, states)
}

func TestJournal_EventsNewestFirst(t *testing.T) {
	j, _ := openTemp(t)
	defer j.Close()
	ctx := context.Background()

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	j.Record(Event{SwitchID: "S1", On: false, Source: SourcePower, At: at})
	j.Record(Event{SwitchID: "S1", On: true, Source: SourceLocal, At: at.Add(time.Second)})
	j.Record(Event{SwitchID: "S9", On: true})
	require.NoError(t, j.Flush(ctx))

	events, err := j.Events(ctx, "S1", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].On)
	assert.Equal(t, SourceLocal, events[0].Source)
	assert.Equal(t, at.Add(time.Second), events[0].At)
	assert.Equal(t, SourcePower, events[1].Source)
}

func TestJournal_RecordAfterClose(t *testing.T) {
	j, _ := openTemp(t)
	require.NoError(t, j.Close())
	assert.False(t, j.Record(Event{SwitchID: "S1"}))
	assert.NoError(t, j.Close(), "second Close is a no-op")
	assert.NoError(t, j.Flush(context.Background()))
}

func TestJournal_PowerChangesRecordPowerSource(t *testing.T) {
	j, _ := openTemp(t)
	defer j.Close()
	ctx := context.Background()

	j.SwitchChanged(lightswitch.StateChange{SwitchID: "S1", On: false, Power: true})
	j.SwitchChanged(lightswitch.StateChange{SwitchID: "S1", On: true})
	require.NoError(t, j.Flush(ctx))

	events, err := j.Events(ctx, "S1", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, SourceLocal, events[0].Source)
	assert.Equal(t, SourcePower, events[1].Source)
}

func TestJournal_RecordRacingClose(t *testing.T) {
	j, _ := openTemp(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				j.Record(Event{SwitchID: "S1", On: n%2 == 0})
			}
		}()
	}
	require.NoError(t, j.Close())
	wg.Wait()
	assert.False(t, j.Record(Event{SwitchID: "S1"}))
}
