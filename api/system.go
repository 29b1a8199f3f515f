package emucore

// SystemInfo describes the core to a driver.
type SystemInfo struct {
	LibraryName    string
	LibraryVersion string
	Extensions     []string
	NeedFullPath   bool
	BlockExtract   bool
}

// Geometry is the video geometry reported to a driver. An AspectRatio of
// zero means the driver derives it from BaseWidth and BaseHeight.
type Geometry struct {
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float64
}

// Timing is the frame and audio rate reported to a driver.
type Timing struct {
	FPS        float64
	SampleRate float64
}

// AVInfo combines Geometry and Timing.
type AVInfo struct {
	Geometry Geometry
	Timing   Timing
}
