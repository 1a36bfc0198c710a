package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/transcoder"
)

func newEncodeCommand(a *app) *cobra.Command {
	var constructor, noSelector bool

	cmd := &cobra.Command{
		Use:   "encode <message> [args...]",
		Short: "Encode call data for a message or constructor",
		Long: `Encode arguments for a message, prefixed with its 4-byte selector.

Each argument is given in its text form: numbers and booleans literally,
strings verbatim, accounts as SS58 or 0x-hex, structs and enums as JSON.
With --constructor the name selects a constructor; omit it to use the
default constructor.`,
		Example: `  scalec -m flipper.json encode flip
  scalec -m flipper.json encode transfer 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY 1000
  scalec -m flipper.json encode --constructor new true`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !constructor {
				return fmt.Errorf("requires a message name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.contract(cmd.Context())
			if err != nil {
				return err
			}
			var name string
			if len(args) > 0 {
				name, args = args[0], args[1:]
			}

			var data []byte
			switch {
			case constructor && noSelector:
				data, err = c.EncodeConstructorArgs(name, args)
			case constructor:
				data, err = c.EncodeConstructor(name, args)
			case noSelector:
				data, err = c.EncodeArgs(name, args)
			default:
				data, err = c.EncodeCall(name, args)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), transcoder.HexString(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&constructor, "constructor", false, "encode a constructor instead of a message")
	cmd.Flags().BoolVar(&noSelector, "no-selector", false, "omit the 4-byte selector")
	return cmd
}

func newDecodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <message> <0xhex>",
		Short: "Decode the value returned by a message",
		Long: `Decode bytes returned by a message against its declared return type.
Primitives decode to JSON values; compound types are shown as hex.`,
		Example: `  scalec -m flipper.json decode get 0x000001`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.contract(cmd.Context())
			if err != nil {
				return err
			}
			data, err := parseHex(args[1])
			if err != nil {
				return err
			}
			v, err := c.DecodeReturn(args[0], data)
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
}

func newValueCommand(a *app) *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "value <type-id> <text>",
		Short: "Encode or decode a single value against a registry type",
		Example: `  scalec -m flipper.json value 11 '{"owner":"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY","limit":7,"label":"x"}'
  scalec -m flipper.json value --decode 13 0xe8030000000000000000000000000000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTypeID(args[0])
			if err != nil {
				return err
			}
			c, err := a.contract(cmd.Context())
			if err != nil {
				return err
			}
			if decode {
				data, err := parseHex(args[1])
				if err != nil {
					return err
				}
				v, err := c.DecodeValue(data, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, v)
			}
			data, err := c.EncodeValue(args[1], id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), transcoder.HexString(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&decode, "decode", false, "treat the value as hex and decode it")
	return cmd
}

func parseTypeID(s string) (registry.TypeID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid type id %q", s)
	}
	return registry.TypeID(n), nil
}

func parseHex(s string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return data, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Fprintln(out(cmd), string(data))
	return nil
}
