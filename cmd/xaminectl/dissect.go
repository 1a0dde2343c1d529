package main

import (
	"fmt"
	"os"

	"github.com/bluetech/libXamine"
	"github.com/spf13/cobra"
)

var bufferPath string

var dissectCmd = &cobra.Command{
	Use:   "dissect <schema-file...>",
	Short: "Compile schema files and dissect a captured response buffer against them",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkMinArgs(args, 1, "xaminectl dissect <schema-file...> --buffer <path>"); err != nil {
			return err
		}
		if bufferPath == "" {
			return fmt.Errorf("--buffer is required")
		}

		ctx, err := xamine.NewContext(xamine.NoFlags)
		if err != nil {
			return err
		}
		defer ctx.Release()

		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			doc, err := xamine.ParseElement(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			for _, diag := range xamine.Compile(ctx, doc) {
				printVerbose("%s: %s\n", path, diag.Error())
			}
		}

		cv, err := xamine.NewConversation(ctx, xamine.NoFlags)
		if err != nil {
			return err
		}
		defer cv.Release()

		buffer, err := os.ReadFile(bufferPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", bufferPath, err)
		}

		item, diag := xamine.Examine(cv, xamine.DirResponse, buffer)
		if diag != nil {
			printError("%s\n", diag.Error())
		}
		if item == nil {
			return fmt.Errorf("buffer did not dissect to a root item")
		}
		fmt.Fprint(os.Stdout, item.String())
		return nil
	},
}

func init() {
	dissectCmd.Flags().StringVar(&bufferPath, "buffer", "", "path to the raw captured response bytes")
	rootCmd.AddCommand(dissectCmd)
}
