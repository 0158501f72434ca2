package generator

import (
	"math/rand"
	"sort"
	"strings"
)

// BSPGenerator generates layouts using Binary Space Partitioning
type BSPGenerator struct {
	rng *rand.Rand
}

// NewBSP creates a generator; the same seed always yields the same layout
func NewBSP(seed int64) *BSPGenerator {
	return &BSPGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	index               int
	x, y, width, height int
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 3 // Minimum size of a room
	roomPadding = 2 // One wall on each side inside the node
	lightEvery  = 3 // Ceiling light spacing
	selfPowered = 5 // One room in this many gets a self-powered switch and no APC
)

// cell kinds tracked while carving
const (
	kindWall = iota
	kindRoom
	kindCorridor
)

type canvas struct {
	tiles [][]rune
	kind  [][]int
	owner [][]int
}

func newCanvas(rows, cols int) *canvas {
	c := &canvas{
		tiles: make([][]rune, rows),
		kind:  make([][]int, rows),
		owner: make([][]int, rows),
	}
	for r := 0; r < rows; r++ {
		c.tiles[r] = []rune(strings.Repeat(string(tileWall), cols))
		c.kind[r] = make([]int, cols)
		c.owner[r] = make([]int, cols)
		for col := range c.owner[r] {
			c.owner[r][col] = -1
		}
	}
	return c
}

func (c *canvas) inBounds(row, col int) bool {
	return row >= 0 && row < len(c.tiles) && col >= 0 && col < len(c.tiles[row])
}

func (c *canvas) String() string {
	lines := make([]string, len(c.tiles))
	for i, row := range c.tiles {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// Generate creates a new layout. rows and cols include the perimeter wall.
func (g *BSPGenerator) Generate(rows, cols int) string {
	c := newCanvas(rows, cols)

	// Create BSP tree (leaving 1 cell border for perimeter walls)
	root := &bspNode{x: 1, y: 1, width: cols - 2, height: rows - 2}
	g.splitBSP(root, minNodeSize)
	rooms := g.createRooms(root, nil)

	for _, room := range rooms {
		carveRoom(c, room)
	}
	g.connectRooms(c, root)
	placeDoors(c)

	for _, room := range rooms {
		g.furnish(c, room)
	}
	g.placeStart(c, rooms)

	return c.String()
}

// splitBSP recursively splits a BSP node
func (g *BSPGenerator) splitBSP(node *bspNode, minSize int) {
	if node.width < minSize*2 && node.height < minSize*2 {
		return // Too small to split
	}

	// Decide split direction
	var splitHorizontal bool
	if node.width > node.height && node.width >= minSize*2 {
		splitHorizontal = false
	} else if node.height > node.width && node.height >= minSize*2 {
		splitHorizontal = true
	} else if node.width >= minSize*2 && node.height >= minSize*2 {
		splitHorizontal = g.rng.Intn(2) == 0
	} else if node.width >= minSize*2 {
		splitHorizontal = false
	} else {
		splitHorizontal = true
	}

	if splitHorizontal {
		splitPoint := minSize + g.rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		splitPoint := minSize + g.rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	g.splitBSP(node.left, minSize)
	g.splitBSP(node.right, minSize)
}

// createRooms creates a room in every leaf, leaving a wall ring inside the node
func (g *BSPGenerator) createRooms(node *bspNode, rooms []*bspRoom) []*bspRoom {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			rooms = g.createRooms(node.left, rooms)
		}
		if node.right != nil {
			rooms = g.createRooms(node.right, rooms)
		}
		return rooms
	}

	maxWidth := node.width - roomPadding
	maxHeight := node.height - roomPadding
	if maxWidth < minRoomSize || maxHeight < minRoomSize {
		return rooms
	}
	width := minRoomSize + g.rng.Intn(maxWidth-minRoomSize+1)
	height := minRoomSize + g.rng.Intn(maxHeight-minRoomSize+1)

	node.room = &bspRoom{
		index:  len(rooms),
		x:      node.x + 1 + g.rng.Intn(node.width-width-1),
		y:      node.y + 1 + g.rng.Intn(node.height-height-1),
		width:  width,
		height: height,
	}
	return append(rooms, node.room)
}

func carveRoom(c *canvas, room *bspRoom) {
	for row := room.y; row < room.y+room.height; row++ {
		for col := room.x; col < room.x+room.width; col++ {
			c.tiles[row][col] = tileFloor
			c.kind[row][col] = kindRoom
			c.owner[row][col] = room.index
		}
	}
}

// connectRooms joins a room from each subtree with an L-shaped corridor
func (g *BSPGenerator) connectRooms(c *canvas, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := g.getRoom(node.left)
	rightRoom := g.getRoom(node.right)

	if leftRoom != nil && rightRoom != nil {
		leftCenterX := leftRoom.x + leftRoom.width/2
		leftCenterY := leftRoom.y + leftRoom.height/2
		rightCenterX := rightRoom.x + rightRoom.width/2
		rightCenterY := rightRoom.y + rightRoom.height/2

		if g.rng.Intn(2) == 0 {
			carveCorridorHorizontal(c, leftCenterY, leftCenterX, rightCenterX)
			carveCorridorVertical(c, rightCenterX, leftCenterY, rightCenterY)
		} else {
			carveCorridorVertical(c, leftCenterX, leftCenterY, rightCenterY)
			carveCorridorHorizontal(c, rightCenterY, leftCenterX, rightCenterX)
		}
	}

	g.connectRooms(c, node.left)
	g.connectRooms(c, node.right)
}

func carveCorridor(c *canvas, row, col int) {
	// Only carve walls; rooms keep their cells
	if c.kind[row][col] == kindWall {
		c.tiles[row][col] = tileFloor
		c.kind[row][col] = kindCorridor
	}
}

func carveCorridorHorizontal(c *canvas, row, startCol, endCol int) {
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	for col := startCol; col <= endCol; col++ {
		carveCorridor(c, row, col)
	}
}

func carveCorridorVertical(c *canvas, col, startRow, endRow int) {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	for row := startRow; row <= endRow; row++ {
		carveCorridor(c, row, col)
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func (g *BSPGenerator) getRoom(node *bspNode) *bspRoom {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *bspRoom
	if node.left != nil {
		leftRoom = g.getRoom(node.left)
	}
	if node.right != nil {
		rightRoom = g.getRoom(node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if g.rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// placeDoors turns every corridor cell that touches a room into an open door,
// so each room is its own lighting zone
func placeDoors(c *canvas) {
	for row := range c.tiles {
		for col := range c.tiles[row] {
			if c.kind[row][col] != kindCorridor {
				continue
			}
			for _, d := range [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}} {
				r, cc := row+d[0], col+d[1]
				if c.inBounds(r, cc) && c.kind[r][cc] == kindRoom {
					c.tiles[row][col] = tileDoorOpen
					break
				}
			}
		}
	}
}

// furnish puts lights, an emergency light, a switch and usually an APC in a room
func (g *BSPGenerator) furnish(c *canvas, room *bspRoom) {
	for row := room.y; row < room.y+room.height; row++ {
		for col := room.x; col < room.x+room.width; col++ {
			if (row-room.y)%lightEvery == 1 && (col-room.x)%lightEvery == 1 {
				c.tiles[row][col] = tileLight
			}
		}
	}
	corner := [2]int{room.y, room.x + room.width - 1}
	if c.tiles[corner[0]][corner[1]] == tileFloor {
		c.tiles[corner[0]][corner[1]] = tileEmergencyLight
	}

	mounts := mountSpots(c, room)
	if len(mounts) == 0 {
		return
	}
	if g.rng.Intn(selfPowered) == 0 {
		c.tiles[mounts[0][0]][mounts[0][1]] = tileSelfPowered
		return
	}
	c.tiles[mounts[0][0]][mounts[0][1]] = tileSwitch
	if len(mounts) > 1 {
		c.tiles[mounts[1][0]][mounts[1][1]] = tileAPC
	}
}

// mountSpots lists wall cells around the room whose first floor neighbour
// (North, East, South, West) lies in the room, nearest the room centre first
func mountSpots(c *canvas, room *bspRoom) [][2]int {
	var candidates [][2]int
	for row := room.y; row < room.y+room.height; row++ {
		candidates = append(candidates, [2]int{row, room.x - 1})
	}
	for col := room.x; col < room.x+room.width; col++ {
		candidates = append(candidates, [2]int{room.y - 1, col})
	}
	for row := room.y; row < room.y+room.height; row++ {
		candidates = append(candidates, [2]int{row, room.x + room.width})
	}
	for col := room.x; col < room.x+room.width; col++ {
		candidates = append(candidates, [2]int{room.y + room.height, col})
	}

	var spots [][2]int
	for _, p := range candidates {
		if !c.inBounds(p[0], p[1]) || c.tiles[p[0]][p[1]] != tileWall {
			continue
		}
		if facesRoom(c, p[0], p[1], room.index) {
			spots = append(spots, p)
		}
	}

	// doubled coordinates keep the centre integral
	cy, cx := 2*room.y+room.height-1, 2*room.x+room.width-1
	dist := func(p [2]int) int {
		dy, dx := 2*p[0]-cy, 2*p[1]-cx
		return dy*dy + dx*dx
	}
	sort.SliceStable(spots, func(i, j int) bool { return dist(spots[i]) < dist(spots[j]) })
	return spots
}

func facesRoom(c *canvas, row, col, index int) bool {
	for _, d := range [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}} {
		r, cc := row+d[0], col+d[1]
		if !c.inBounds(r, cc) || !floorLike(c.tiles[r][cc]) {
			continue
		}
		return c.kind[r][cc] == kindRoom && c.owner[r][cc] == index
	}
	return false
}

// placeStart puts the player in a random room, on the centre tile if it is
// plain floor and otherwise the first plain floor tile
func (g *BSPGenerator) placeStart(c *canvas, rooms []*bspRoom) {
	if len(rooms) == 0 {
		row, col := len(c.tiles)/2, len(c.tiles[0])/2
		c.tiles[row][col] = tileStart
		return
	}
	room := rooms[g.rng.Intn(len(rooms))]
	row, col := room.y+room.height/2, room.x+room.width/2
	if c.tiles[row][col] == tileFloor {
		c.tiles[row][col] = tileStart
		return
	}
	for r := room.y; r < room.y+room.height; r++ {
		for cc := room.x; cc < room.x+room.width; cc++ {
			if c.tiles[r][cc] == tileFloor {
				c.tiles[r][cc] = tileStart
				return
			}
		}
	}
	c.tiles[row][col] = tileStart
}
