// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command receiptdump prints the in-app purchases of an App Store receipt.
//
// Usage:
//
//	receiptdump [flags] <file>
//
// The file holds either the receipt payload or, with --pkcs7, the complete
// PKCS#7 container. With --hex the file holds the same data as hexadecimal
// text.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "receiptdump [flags] <file>",
		Short:        "Print the in-app purchases of an App Store receipt",
		Long:         "receiptdump decodes an App Store receipt payload and prints its in-app purchases.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.PKCS7, "pkcs7", false, "input is a PKCS#7 container rather than the bare payload")
	flags.StringVar(&opts.Roots, "roots", "", "PEM file with root certificates to verify the PKCS#7 signature against (implies --pkcs7)")
	flags.BoolVar(&opts.Hex, "hex", false, "input file holds hex-encoded data")
	flags.StringVarP(&opts.Format, "format", "f", formatText, "output format: text or yaml")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}
