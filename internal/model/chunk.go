package model

// Chunk is a text span and its embedding. It carries no reference back to
// the document it was cut from.
type Chunk struct {
	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
}
