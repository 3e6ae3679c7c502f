// Package batch runs variant generation over a folder of source images.
//
// A Runner combines a layout (which files are sources, where variants go), a
// palette, and a Sink (where variants are stored). DirSink writes PNG files
// under an output folder; tests and the MCP server can supply their own.
//
//	r := &batch.Runner{
//	    Layout:  layout.Tree{},
//	    Palette: imaging.DefaultPalette(),
//	    Sink:    batch.NewDirSink("output"),
//	}
//	report, err := r.Run("input")
package batch
