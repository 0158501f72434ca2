package ebiten

import "image/color"

// Color palette for the station
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorPlayer        = color.RGBA{0, 255, 0, 255}     // Bright green
	colorWall          = color.RGBA{180, 180, 200, 255} // Light gray-blue for wall text
	colorWallBg        = color.RGBA{60, 60, 80, 255}
	colorFloorDark     = color.RGBA{70, 70, 90, 255}
	colorFloorLit      = color.RGBA{230, 220, 160, 255} // Warm lamp light
	colorDoorClosed    = color.RGBA{255, 255, 0, 255}
	colorDoorOpen      = color.RGBA{0, 220, 0, 255}
	colorLightOn       = color.RGBA{255, 240, 140, 255}
	colorLightOff      = color.RGBA{110, 110, 130, 255}
	colorEmergencyOn   = color.RGBA{255, 60, 60, 255}
	colorEmergencyOff  = color.RGBA{120, 70, 70, 255}
	colorPowered       = color.RGBA{0, 255, 100, 255}
	colorUnpowered     = color.RGBA{255, 100, 100, 255}
	colorItem          = color.RGBA{220, 170, 255, 255}
	colorSubtle        = color.RGBA{120, 130, 180, 255}
	colorText          = color.RGBA{200, 210, 245, 255}
	colorAction        = color.RGBA{180, 150, 250, 255}
	colorFlash         = color.RGBA{90, 90, 40, 255} // Background behind a switch that just changed
)
