package plcoord

import "fmt"

// DefaultTransformer is a GRS80 based Transformer.
var DefaultTransformer *Transformer

func init() {
	var err error
	DefaultTransformer, err = NewTransformerFor(GRS80)
	if err != nil {
		panic(fmt.Sprintf("error constructing GRS80 transformer: %s", err))
	}
}
