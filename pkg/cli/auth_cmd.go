package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthTokenCmd())
	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	var (
		principal string
		secret    string
		expires   time.Duration
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a dev-mode JWT token",
		Long:  "Generate an HS256 JWT token for development and testing. With --save the token is written to the active profile.",
		Example: `  # Generate a token for alice with the default dev secret
  minidb auth token --principal alice --secret minidb-dev-secret

  # Generate, save to the active profile, and use a custom expiry
  minidb auth token --principal alice --secret mysecret --expires 48h --save`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()
			claims := jwt.MapClaims{
				"sub": principal,
				"iat": now.Unix(),
				"exp": now.Add(expires).Unix(),
			}

			token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			if save {
				cfg, err := LoadUserConfig()
				if err != nil {
					cfg = newUserConfig()
				}
				profileName := cfg.CurrentProfile
				if profileName == "" {
					profileName = "default"
					cfg.CurrentProfile = profileName
				}
				p := cfg.Profiles[profileName]
				p.Token = signed
				cfg.Profiles[profileName] = p
				if err := SaveUserConfig(cfg); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Token saved to profile %q\n", profileName)
			}

			_, _ = fmt.Fprintln(os.Stdout, signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "Principal name (JWT sub claim)")
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (HS256)")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "Token expiry duration")
	cmd.Flags().BoolVar(&save, "save", false, "Write the token to the active profile")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
