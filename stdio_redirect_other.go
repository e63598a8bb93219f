//go:build !unix

package main

import "os"

// redirectStdIO swaps the process-level writers on platforms without Dup2.
// Runtime output such as panic traces may still reach the original stderr.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
