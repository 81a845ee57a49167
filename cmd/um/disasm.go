package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcornwell/universal-machine/internal/disasm"
	"github.com/rcornwell/universal-machine/internal/instr"
)

func disasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <image.um>",
		Short: "Print a UM image as one disassembled line per word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return disassembleFile(cmd, args[0])
		},
	}
}

func disassembleFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return wrapError(kindOpenFailed, fmt.Errorf("um: cannot open %s: %w", path, err))
	}
	if len(data)%4 != 0 {
		return wrapError(kindTruncatedImage, fmt.Errorf("um: %s: improper file size", path))
	}

	words := make([]instr.Word, len(data)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(data[i*4 : i*4+4])
	}

	for _, line := range disasm.DisassembleAll(words) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
