package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angaza/nexus-keycode-go/internal/channelcmd"
	"github.com/angaza/nexus-keycode-go/internal/fullcode"
	"github.com/angaza/nexus-keycode-go/internal/smallcode"
)

func generateChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Generate a Channel Origin Command token, wrapped in a Full or Small passthrough keycode",
	}

	cmd.AddCommand(channelActionCmd("unlink-all", channelcmd.ActionUnlinkAllAccessories, "Unlink every accessory a controller has ever linked"))
	cmd.AddCommand(channelActionCmd("unlock-all", channelcmd.ActionUnlockAllAccessories, "Unlock every accessory a controller has ever linked"))
	cmd.AddCommand(channelActionCmd("unlock", channelcmd.ActionUnlockSpecificAccessory, "Unlock one specific linked accessory"))
	cmd.AddCommand(channelActionCmd("unlink", channelcmd.ActionUnlinkSpecificAccessory, "Unlink one specific linked accessory"))
	cmd.AddCommand(channelLinkCmd())
	cmd.AddCommand(channelSetCreditWipeRestrictedFlagCmd())

	return cmd
}

func channelActionCmd(use string, action channelcmd.Action, short string) *cobra.Command {
	var (
		controllerCount uint32
		controllerHex   string
		accessoryASPID  uint64
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(controllerHex)
			if err != nil {
				return err
			}

			token, err := action.Build(channelcmd.BuildParams{
				ControllerCommandCount: controllerCount,
				ControllerSymKey:       key,
				AccessoryASPID:         accessoryASPID,
			})
			if err != nil {
				return fmt.Errorf("generate channel %s: %w", use, err)
			}

			return printChannelToken(token)
		},
	}

	cmd.Flags().Uint32Var(&controllerCount, "controller-count", 0, "controller command sequence count")
	cmd.Flags().StringVar(&controllerHex, "controller-key", "", "32 lowercase hex character controller symmetric key")
	cmd.Flags().Uint64Var(&accessoryASPID, "accessory-id", 0, "48-bit accessory Nexus ID (authority<<32 | device); required for unlock/unlink")
	_ = cmd.MarkFlagRequired("controller-key")

	return cmd
}

func channelLinkCmd() *cobra.Command {
	var (
		controllerCount uint32
		controllerHex   string
		accessoryCount  uint32
		accessoryHex    string
		accessoryASPID  uint64
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link an accessory via Link Mode 3 (replay its broadcast challenge)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			controllerKey, err := parseSecretKeyHex(controllerHex)
			if err != nil {
				return err
			}
			accessoryKey, err := parseSecretKeyHex(accessoryHex)
			if err != nil {
				return err
			}

			token, err := channelcmd.LinkAccessoryMode3(accessoryASPID, controllerCount, accessoryCount, accessoryKey, controllerKey)
			if err != nil {
				return fmt.Errorf("generate channel link: %w", err)
			}

			return printChannelToken(token)
		},
	}

	cmd.Flags().Uint32Var(&controllerCount, "controller-count", 0, "controller command sequence count")
	cmd.Flags().StringVar(&controllerHex, "controller-key", "", "32 lowercase hex character controller symmetric key")
	cmd.Flags().Uint32Var(&accessoryCount, "accessory-count", 0, "accessory command sequence count")
	cmd.Flags().StringVar(&accessoryHex, "accessory-key", "", "32 lowercase hex character accessory symmetric key")
	cmd.Flags().Uint64Var(&accessoryASPID, "accessory-id", 0, "48-bit accessory Nexus ID (authority<<32 | device)")
	_ = cmd.MarkFlagRequired("controller-key")
	_ = cmd.MarkFlagRequired("accessory-key")

	return cmd
}

func channelSetCreditWipeRestrictedFlagCmd() *cobra.Command {
	var (
		controllerCount uint32
		controllerHex   string
		days            int
	)

	cmd := &cobra.Command{
		Use:   "set-credit-wipe-restricted-flag",
		Short: "Generate KEYCODE_SET_CREDIT_WIPE_RESTRICTED_FLAG over the Smallpad bearer",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(controllerHex)
			if err != nil {
				return err
			}

			token, err := channelcmd.KeycodeSetCreditWipeRestrictedFlag(days, controllerCount, key)
			if err != nil {
				return fmt.Errorf("generate channel set-credit-wipe-restricted-flag: %w", err)
			}

			return printChannelToken(token)
		},
	}

	cmd.Flags().Uint32Var(&controllerCount, "controller-count", 0, "controller command sequence count")
	cmd.Flags().StringVar(&controllerHex, "controller-key", "", "32 lowercase hex character controller symmetric key")
	cmd.Flags().IntVar(&days, "days", 1, "days of credit, or -1 for unconditional unlock")
	_ = cmd.MarkFlagRequired("controller-key")

	return cmd
}

// printChannelToken renders a Channel Origin Command token as a keycode.
// ASCII-digit-bearer tokens are wrapped in a Full protocol
// PASSTHROUGH_COMMAND keycode; the one Smallpad-bearer token
// (channelcmd.KeycodeSetCreditWipeRestrictedFlag) is carried as a 26-bit
// payload inside a Small protocol Passthrough keycode instead.
func printChannelToken(token *channelcmd.Token) error {
	if token.Bearer() == channelcmd.SmallpadBits {
		payload, err := token.SmallpadPayload()
		if err != nil {
			return fmt.Errorf("render smallpad payload: %w", err)
		}
		msg, err := smallcode.NewPassthrough(payload)
		if err != nil {
			return fmt.Errorf("wrap smallpad payload: %w", err)
		}
		keycode, err := msg.ToKeycode(smallcode.DefaultRenderOptions())
		if err != nil {
			return fmt.Errorf("render keycode: %w", err)
		}
		fmt.Println(keycode)
		return nil
	}

	msg, err := fullcode.PassthroughChannelOriginCommand(token)
	if err != nil {
		return fmt.Errorf("wrap channel origin command: %w", err)
	}

	keycode, err := msg.ToKeycode(fullcode.DefaultRenderOptions())
	if err != nil {
		return fmt.Errorf("render keycode: %w", err)
	}

	fmt.Println(keycode)
	return nil
}
