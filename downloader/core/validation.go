package core

import (
	"fmt"
	"os"
)

// Validator handles system validations
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSpace checks that the directory's filesystem can hold fileSize bytes
func (v *Validator) ValidateSpace(fileSize int64, directory string) error {
	return CheckDiskSpace(fileSize, directory)
}

// ValidateDirectories checks and creates necessary directories
func (v *Validator) ValidateDirectories(destPath string) error {
	if err := os.MkdirAll(destPath, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	return nil
}
