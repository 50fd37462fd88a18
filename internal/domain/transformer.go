package domain

import "io"

// Transformer decodes an upstream payload and normalizes its items into Articles.
// maxItems caps the raw items considered before normalization; zero or less means no cap.
type Transformer interface {
	Transform(reader io.Reader, src Source, maxItems int) (*Batch, error)
}
