/*
Package inpaint implements exemplar-based image inpainting: given a source
image and a binary mask marking an unknown "hole" region, it synthesizes
plausible pixel values by greedily copying patches from the known region,
following the Criminisi priority-driven algorithm.

The package provides a command line interface, supporting flags for patch
radius, candidate count and refiner selection. To check the supported
commands type:

	$ inpaint --help

In case you wish to integrate the API in a self constructed environment here
is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/inpaint"
	)

	func main() {
		p := &inpaint.Processor{
			PatchRadius: 5,
			K:           200,
			MaskPath:    "mask.png",
		}

		if err := p.Process(context.Background(), in, out); err != nil {
			fmt.Printf("Error inpainting image: %s", err.Error())
		}
	}
*/
package inpaint
