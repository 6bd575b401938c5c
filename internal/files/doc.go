// Package files provides the file system operations the analysis needs
// around its outputs.
//
// Manager.WriteAtomic is the only way results reach disk: content is staged in
// a temporary file beside the destination and renamed over it once complete.
//
// Example usage:
//
//	manager := files.NewManager(logger)
//	err := manager.WriteAtomic("results.xlsx", func(w io.Writer) error {
//	    _, err := workbook.WriteTo(w)
//	    return err
//	})
package files
