// Package layout maps input folders to source images and source images to
// output paths.
//
// Two layouts are provided:
//
//   - Tree walks the whole input tree and accepts images laid out as
//     <Category>/<Item>/<base>.png where Category is "Shirts" or "Pants".
//     Variants go to <Category>/<Item>/<base>_<Variant>/Shirt.png (or
//     Pants.png), one folder per variant.
//   - Flat reads the top level of the input folder and writes
//     <base>_<variant>.png next to each other, with lowercase variant names.
//
// Classification (SplitPath, Classify) is pure and works on path strings
// only, so it can be tested without touching the file system. A file named
// overlay.png is never a source; it is attached to every source in its folder
// as that source's overlay.
package layout
