package game

// UVDebugTextureSize is the edge length in pixels of the debug texture.
const UVDebugTextureSize = 8

var uvPalette = [32]byte{
	255, 102, 159, 255, 255, 159, 102, 255, 236, 255, 102, 255, 121, 255, 102, 255,
	102, 255, 198, 255, 102, 198, 255, 255, 121, 102, 255, 255, 236, 102, 255, 255,
}

// UVDebugTexture returns an 8x8 RGBA image. Each row is the palette shifted one pixel right of the row above.
func UVDebugTexture() []byte {
	const row = len(uvPalette)
	data := make([]byte, 0, row*UVDebugTextureSize)
	var line [row]byte
	copy(line[:], uvPalette[:])
	for y := 0; y < UVDebugTextureSize; y++ {
		data = append(data, line[:]...)
		// rotate right by one RGBA pixel
		var next [row]byte
		copy(next[4:], line[:row-4])
		copy(next[:4], line[row-4:])
		line = next
	}
	return data
}
