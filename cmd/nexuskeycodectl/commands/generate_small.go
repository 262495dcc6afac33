package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angaza/nexus-keycode-go/internal/smallcode"
)

func generateSmallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "small",
		Short: "Generate a Small (quaternary keypad) protocol keycode",
	}

	cmd.AddCommand(smallCreditCmd())
	cmd.AddCommand(smallMaintenanceCmd())
	cmd.AddCommand(smallTestCmd())
	cmd.AddCommand(smallExtendedCmd())

	return cmd
}

func smallCreditCmd() *cobra.Command {
	var (
		id        uint32
		msgType   string
		days      int
		secretHex string
	)

	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Generate an ADD_CREDIT, SET_CREDIT, or UNLOCK Small keycode",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(secretHex)
			if err != nil {
				return err
			}

			var msg *smallcode.Message
			switch msgType {
			case "ADD":
				msg, err = smallcode.AddCredit(id, days, key)
			case "SET":
				msg, err = smallcode.SetCredit(id, days, key)
			case "UNLOCK":
				msg, err = smallcode.Unlock(id, key)
			default:
				return fmt.Errorf("nexuskeycodectl: unsupported small credit type %q", msgType)
			}
			if err != nil {
				return fmt.Errorf("generate small credit: %w", err)
			}

			keycode, err := msg.ToKeycode(smallcode.DefaultRenderOptions())
			if err != nil {
				return fmt.Errorf("render keycode: %w", err)
			}

			fmt.Println(keycode)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&id, "id", 0, "message sequence number")
	cmd.Flags().StringVar(&msgType, "type", "ADD", "credit message type: ADD, SET, or UNLOCK")
	cmd.Flags().IntVar(&days, "days", 1, "days of credit; ignored for UNLOCK")
	cmd.Flags().StringVar(&secretHex, "secret-key", "", "32 lowercase hex character secret key")
	_ = cmd.MarkFlagRequired("secret-key")

	return cmd
}

func smallMaintenanceCmd() *cobra.Command {
	var (
		action    string
		secretHex string
	)

	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Generate a MAINTENANCE_TEST keycode requesting a maintenance action",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(secretHex)
			if err != nil {
				return err
			}

			var maintType smallcode.MaintenanceType
			switch action {
			case "wipe0":
				maintType = smallcode.WipeState0
			case "wipe1":
				maintType = smallcode.WipeState1
			case "wipe-ids-all":
				maintType = smallcode.WipeIDsAll
			default:
				return fmt.Errorf("nexuskeycodectl: unsupported maintenance action %q", action)
			}

			msg, err := smallcode.Maintenance(maintType, key)
			if err != nil {
				return fmt.Errorf("generate small maintenance: %w", err)
			}

			keycode, err := msg.ToKeycode(smallcode.DefaultRenderOptions())
			if err != nil {
				return fmt.Errorf("render keycode: %w", err)
			}

			fmt.Println(keycode)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "wipe0", "wipe0, wipe1, or wipe-ids-all")
	cmd.Flags().StringVar(&secretHex, "secret-key", "", "32 lowercase hex character secret key")
	_ = cmd.MarkFlagRequired("secret-key")

	return cmd
}

func smallTestCmd() *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Generate a diagnostic Test keycode, fixed-keyed for every device",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var testType smallcode.TestType
			switch action {
			case "short-test":
				testType = smallcode.ShortTest
			case "oqc-test":
				testType = smallcode.OQCTest
			default:
				return fmt.Errorf("nexuskeycodectl: unsupported test action %q", action)
			}

			msg, err := smallcode.Test(testType)
			if err != nil {
				return fmt.Errorf("generate small test: %w", err)
			}

			keycode, err := msg.ToKeycode(smallcode.DefaultRenderOptions())
			if err != nil {
				return fmt.Errorf("render keycode: %w", err)
			}

			fmt.Println(keycode)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "short-test", "short-test or oqc-test")

	return cmd
}

func smallExtendedCmd() *cobra.Command {
	var (
		id        uint32
		days      int
		secretHex string
	)

	cmd := &cobra.Command{
		Use:   "set-credit-wipe-restricted-flag",
		Short: "Generate an Extended Small SET_CREDIT_WIPE_RESTRICTED_FLAG keycode",
		Long: "Builds an Extended Small message carried inside a Passthrough Small\n" +
			"keycode. If the requested id would create a MAC collision in the\n" +
			"device's receive window, the id is advanced automatically; the id\n" +
			"actually used is printed alongside the keycode.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := parseSecretKeyHex(secretHex)
			if err != nil {
				return err
			}

			// NewExtendedSmall reports a collision by erroring with the next
			// non-colliding id rather than silently substituting it (see
			// smallcode.ExtendedIDInvalidError); retry with that id until it
			// succeeds or the collision window is exhausted.
			cur := id
			var msg *smallcode.Message
			var finalID uint32
			for {
				var callErr error
				msg, finalID, callErr = smallcode.NewExtendedSmall(smallcode.SetCreditWipeRestrictedFlag, cur, days, key)
				if callErr == nil {
					break
				}
				var invalidErr *smallcode.ExtendedIDInvalidError
				if !errors.As(callErr, &invalidErr) {
					return fmt.Errorf("generate extended small: %w", callErr)
				}
				cur = invalidErr.NextValidID
			}

			keycode, err := msg.ToKeycode(smallcode.DefaultRenderOptions())
			if err != nil {
				return fmt.Errorf("render keycode: %w", err)
			}

			fmt.Printf("%s (id=%d)\n", keycode, finalID)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&id, "id", 0, "requested message sequence number")
	cmd.Flags().IntVar(&days, "days", 1, "days of credit")
	cmd.Flags().StringVar(&secretHex, "secret-key", "", "32 lowercase hex character secret key")
	_ = cmd.MarkFlagRequired("secret-key")

	return cmd
}
