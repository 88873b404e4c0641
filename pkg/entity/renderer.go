package entity

// Texture is an opaque handle to a loaded image asset
type Texture interface {
	Width() float32
	Height() float32
}

// Renderer handles rendering game entities
type Renderer interface {
	Clear()
	RenderSnake(snake *Snake)
	// RenderGameOver draws the fixed game-over visual in place of the grid
	RenderGameOver(texture Texture)
	Present()
}
