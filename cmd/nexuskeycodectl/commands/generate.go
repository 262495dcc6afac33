package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angaza/nexus-keycode-go/internal/fullcode"
	"github.com/angaza/nexus-keycode-go/internal/generator"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a keycode or channel origin command token",
	}

	cmd.AddCommand(generateFullCmd())
	cmd.AddCommand(generateSmallCmd())
	cmd.AddCommand(generateChannelCmd())

	return cmd
}

func generateFullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "full",
		Short: "Generate a Full (decimal keypad) protocol keycode",
	}

	cmd.AddCommand(fullCreditCmd())
	cmd.AddCommand(fullWipeCmd())
	cmd.AddCommand(fullFactoryCmd())
	cmd.AddCommand(fullUARTPassthroughCmd())

	return cmd
}

func fullCreditCmd() *cobra.Command {
	var (
		id        uint32
		msgType   string
		hours     int
		secretHex string
	)

	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Generate an ADD_CREDIT, SET_CREDIT, or UNLOCK Full keycode",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(secretHex)
			if err != nil {
				return err
			}

			msg, err := generator.CreateFullCreditMessage(id, generator.CreditMessageType(msgType), key, hours)
			if err != nil {
				return fmt.Errorf("generate full credit: %w", err)
			}

			keycode, err := msg.ToKeycode(fullcode.DefaultRenderOptions())
			if err != nil {
				return fmt.Errorf("render keycode: %w", err)
			}

			fmt.Println(keycode)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&id, "id", 0, "message sequence number")
	cmd.Flags().StringVar(&msgType, "type", "ADD", "credit message type: ADD, SET, or UNLOCK")
	cmd.Flags().IntVar(&hours, "hours", 0, "hours of credit (0-99999); ignored for UNLOCK")
	cmd.Flags().StringVar(&secretHex, "secret-key", "", "32 lowercase hex character secret key")
	_ = cmd.MarkFlagRequired("secret-key")

	return cmd
}

func fullWipeCmd() *cobra.Command {
	var (
		id        uint32
		flag      uint8
		secretHex string
	)

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Generate a WIPE_STATE Full keycode",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(secretHex)
			if err != nil {
				return err
			}

			msg, err := fullcode.WipeState(id, fullcode.WipeFlag(flag), key)
			if err != nil {
				return fmt.Errorf("generate full wipe: %w", err)
			}

			keycode, err := msg.ToKeycode(fullcode.DefaultRenderOptions())
			if err != nil {
				return fmt.Errorf("render keycode: %w", err)
			}

			fmt.Println(keycode)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&id, "id", 0, "message sequence number")
	cmd.Flags().Uint8Var(&flag, "flag", 0, "wipe target flag: 0=TARGET_FLAGS_0, 1=TARGET_FLAGS_1, 2=WIPE_IDS_ALL, 3=WIPE_RESTRICTED_FLAG")
	cmd.Flags().StringVar(&secretHex, "secret-key", "", "32 lowercase hex character secret key")
	_ = cmd.MarkFlagRequired("secret-key")

	return cmd
}

func fullFactoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factory",
		Short: "Generate a factory-only (keyless) Full keycode",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "allow-test",
		Short: "Generate FACTORY_ALLOW_TEST",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printFactoryKeycode(fullcode.AllowTest())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "display-id",
		Short: "Generate FACTORY_DISPLAY_PAYG_ID",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printFactoryKeycode(fullcode.DisplayPAYGID())
		},
	})

	var numMin int
	oqc := &cobra.Command{
		Use:   "oqc-test",
		Short: "Generate FACTORY_OQC_TEST",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printFactoryKeycode(fullcode.OQCTest(numMin))
		},
	}
	oqc.Flags().IntVar(&numMin, "num-min", 60, "minutes of additive credit (1-99)")
	cmd.AddCommand(oqc)

	return cmd
}

func printFactoryKeycode(msg *fullcode.Message, err error) error {
	if err != nil {
		return fmt.Errorf("generate full factory: %w", err)
	}
	keycode, err := msg.ToKeycode(fullcode.DefaultRenderOptions())
	if err != nil {
		return fmt.Errorf("render keycode: %w", err)
	}
	fmt.Println(keycode)
	return nil
}

func fullUARTPassthroughCmd() *cobra.Command {
	var secretHex string

	cmd := &cobra.Command{
		Use:   "uart-passthrough",
		Short: "Generate a PASSTHROUGH_COMMAND keycode carrying a derived UART security handshake",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(secretHex)
			if err != nil {
				return err
			}

			msg, err := fullcode.PassthroughUARTKeycode(key)
			if err != nil {
				return fmt.Errorf("generate uart passthrough: %w", err)
			}

			keycode, err := msg.ToKeycode(fullcode.DefaultRenderOptions())
			if err != nil {
				return fmt.Errorf("render keycode: %w", err)
			}

			fmt.Println(keycode)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretHex, "secret-key", "", "32 lowercase hex character secret key")
	_ = cmd.MarkFlagRequired("secret-key")

	return cmd
}
