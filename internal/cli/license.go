package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/clipscrub/clipscrub/internal/license"
	"github.com/spf13/cobra"
)

var deviceIDCmd = &cobra.Command{
	Use:   "device-id",
	Short: "Print the device id used for license binding",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, license.CurrentDeviceID())
	},
}

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Show license verification status",
	Run: func(cmd *cobra.Command, args []string) {
		verify := license.Check("", time.Now())

		fmt.Fprintf(os.Stdout, "status: %s\n", verify.Status)

		switch verify.Status {
		case license.StatusNoLicense:
			fmt.Fprintf(os.Stdout, "path: %s\n", license.DefaultPath())
			fmt.Fprintln(os.Stdout, "running in free mode")
		case license.StatusInvalid:
			fmt.Fprintf(os.Stdout, "reason: %s\n", verify.Reason)
			if verify.Detail != "" {
				fmt.Fprintf(os.Stdout, "detail: %s\n", verify.Detail)
			}
			fmt.Fprintln(os.Stdout, "running in free mode")
		case license.StatusValid, license.StatusDevOverride:
			fmt.Fprintf(os.Stdout, "email: %s\n", verify.Info.Email)
			fmt.Fprintf(os.Stdout, "plan: %s\n", verify.Info.Plan)
			if verify.Info.Expires != nil {
				fmt.Fprintf(os.Stdout, "expires: %s\n", verify.Info.Expires.Format(time.RFC3339))
			}
		}
	},
}
