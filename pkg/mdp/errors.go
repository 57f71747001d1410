package mdp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingFile is returned when an MDP path is not an existing regular file
	ErrMissingFile = errors.New("mdp file not found")

	// ErrMalformedFile is returned when required options are absent from an MDP file
	ErrMalformedFile = errors.New("malformed mdp file")
)

// MalformedFileError lists every required option missing from a step's file
type MalformedFileError struct {
	Step    string
	Missing []string
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("the following arguments are missing from mdp file for %s: %s. Please check your input",
		e.Step, strings.Join(e.Missing, ", "))
}

// Is lets errors.Is match ErrMalformedFile
func (e *MalformedFileError) Is(target error) bool {
	return target == ErrMalformedFile
}
