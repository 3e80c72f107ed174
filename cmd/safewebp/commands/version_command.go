package commands

import (
	"fmt"

	"github.com/belphemur/safewebp/pkg/webp"
	"github.com/spf13/cobra"
)

func init() {
	command := &cobra.Command{
		Use:   "version",
		Short: "Print the version of the application and of the linked libwebp",
		Run:   VersionCommand,
	}
	AddCommand(command)
}

func VersionCommand(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "safewebp %s [%s] built [%s]\n", versionInfo.version, versionInfo.commit, versionInfo.date)
	_, _ = fmt.Fprintf(out, "libwebp encoder %s, decoder %s, mux %s, demux %s\n",
		webp.EncoderVersion(), webp.DecoderVersion(), webp.MuxVersion(), webp.DemuxVersion())
}
