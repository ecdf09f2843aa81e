package prompt

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/prompt"
)

// PromptCmd represents the prompt command
var PromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "print the JSON prompt for extracting manuscript details",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd.OutOrStdout())
	},
}

func run(w io.Writer) {
	fmt.Fprintln(w, prompt.Generate())
}
