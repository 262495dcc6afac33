package fullcode

import (
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/channelcmd"
	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
	"github.com/angaza/nexus-keycode-go/internal/uartkey"
)

// zeroKey is the fixed secret key factory messages are MACed under; it
// carries no secrecy, it only lets any device validate a factory message
// without per-device key material.
var zeroKey = make([]byte, nexusprim.KeyLen)

// AllowTest briefly enables a device even if it is otherwise PAYG-disabled,
// to support field testing of a potentially faulty product. Carries no body.
func AllowTest() (*Message, error) {
	return newBase(0, FactoryAllowTest, "", zeroKey, true)
}

// OQCTest provides numMin minutes of additive credit, intended to be usable
// up to 10 times per device during factory/warehouse testing. numMin must
// be in [1, 99].
func OQCTest(numMin int) (*Message, error) {
	if numMin < 1 || numMin > 99 {
		return nil, fmt.Errorf("fullcode: oqc_test num_min %d: %w", numMin, ErrOutOfRangeBodyValue)
	}
	return newBase(0, FactoryOQCTest, fmt.Sprintf("000%02d", numMin), zeroKey, true)
}

// DisplayPAYGID instructs device firmware to display its provisioned PAYG
// ID via an LED or LCD, for factory, warehouse, or field identification.
// Carries no body.
func DisplayPAYGID() (*Message, error) {
	return newBase(0, FactoryDisplayID, "", zeroKey, true)
}

// PassthroughCommand sends application-specific data that device firmware
// forwards unparsed to the application identified by appID. Passthrough
// messages carry no MAC and are not validated by the keycode library
// itself; applications that need integrity must check it themselves.
func PassthroughCommand(appID PassthroughApplicationID, passthroughDigits string) (*Message, error) {
	switch appID {
	case ToPAYGUARTPassthrough, ChannelOriginCommand:
	default:
		return nil, fmt.Errorf("fullcode: passthrough application id %d: %w", uint8(appID), ErrUnsupportedMessageType)
	}

	body := fmt.Sprintf("%d%s", uint8(appID), passthroughDigits)
	if len(body) == 13 {
		// header(1) + body(13) == 14, colliding with the fixed-length
		// activation keycode digit count.
		return nil, ErrPassthroughBodyForbidden
	}

	return newBase(0, PassthroughCmd, body, nil, true)
}

// PassthroughUARTKeycode wraps a derived UART security handshake value in a
// PASSTHROUGH_COMMAND message addressed to the UART passthrough application.
func PassthroughUARTKeycode(secretKey []byte) (*Message, error) {
	digits, err := uartkey.NumericBodyAndMAC(secretKey)
	if err != nil {
		return nil, fmt.Errorf("fullcode: uart passthrough: %w", err)
	}
	return PassthroughCommand(ToPAYGUARTPassthrough, digits)
}

// PassthroughChannelOriginCommand wraps a Channel Origin Command token's
// ASCII-bearer rendering in a PASSTHROUGH_COMMAND message addressed to the
// Channel Origin Command application. The token must have been built with
// channelcmd.ASCIIDigits as its bearer; Smallpad-bearer tokens are carried
// directly inside a Small protocol Passthrough message instead, not here.
func PassthroughChannelOriginCommand(token *channelcmd.Token) (*Message, error) {
	digits, err := token.ToDigits()
	if err != nil {
		return nil, fmt.Errorf("fullcode: channel origin command: %w", err)
	}
	return PassthroughCommand(ChannelOriginCommand, digits)
}
