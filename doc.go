/*
Package convolveme applies discrete 2D convolution filters to raster images and
displays either the filtered result or, in toggle mode, swaps between the original
and the filtered pixels when the pointer enters or leaves the image.

The package provides a command line utility. Check the supported flags by typing:

	$ convolveme --help

Example binding an image in toggle mode:

	package main

	import (
		"fmt"
		"github.com/esimov/convolveme"
	)

	func main() {
		el := convolveme.NewImageElement(srcImg, 0, 0)
		sess, err := convolveme.Bind(el, convolveme.Options{
			Kernel:    convolveme.Sharpen,
			Permanent: false,
		})
		if err != nil {
			fmt.Printf("Error binding image: %s", err.Error())
			return
		}
		el.PointerEnter() // sess.State() == convolveme.ShowingFiltered
		el.PointerLeave() // sess.State() == convolveme.ShowingOriginal
	}

Pixels closer to an edge than the kernel radius are not computed and stay
transparent black. Computed samples are not clamped, so sharpen or emboss results
may exceed the [0, 255] range; they are clamped only when converted to 8 bit data
for display.
*/
package convolveme
