// Copyright 2026 The SecKey Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// skinfo decodes captured security-key management responses. It works on
// hex dumps of the raw descriptor TLV stream, so transport captures can be
// inspected without hardware attached.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/SecKeyProject/go-seckey"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := &cli.Command{
		Name:  "skinfo",
		Usage: "Decode security-key device descriptors",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			decodeCommand(&logger),
			mergeCommand(&logger),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func decodeCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a hex-encoded descriptor blob",
		ArgsUsage: "<hex-blob>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			setup(logger, cmd)
			info, err := decodeHex(cmd.Args().First())
			if err != nil {
				return err
			}
			printInfo(info)
			return nil
		},
	}
}

func mergeCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Decode two descriptor blobs and merge them, first blob primary",
		ArgsUsage: "<hex-blob> <hex-blob>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			setup(logger, cmd)
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("merge needs exactly 2 blobs, got %d", cmd.Args().Len())
			}
			primary, err := decodeHex(cmd.Args().Get(0))
			if err != nil {
				return fmt.Errorf("primary blob: %w", err)
			}
			secondary, err := decodeHex(cmd.Args().Get(1))
			if err != nil {
				return fmt.Errorf("secondary blob: %w", err)
			}
			printInfo(primary.Merge(secondary))
			return nil
		},
	}
}

// setup wires library diagnostics into the CLI logger
func setup(logger *zerolog.Logger, cmd *cli.Command) {
	if cmd.Bool("verbose") {
		seckey.SetDebugEnabled(true)
	}
	seckey.SetUnknownTagHook(func(tag byte, value []byte) {
		logger.Warn().
			Str("tag", fmt.Sprintf("0x%02X", tag)).
			Str("value", hex.EncodeToString(value)).
			Msg("unrecognized descriptor tag")
	})
}

// decodeHex parses and decodes one hex-encoded descriptor blob
func decodeHex(arg string) (*seckey.DeviceInfo, error) {
	if arg == "" {
		return nil, fmt.Errorf("missing hex blob argument")
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == ':' || r == '\n' || r == '\t' {
			return -1
		}
		return r
	}, arg)
	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	info, err := seckey.DecodeDeviceInfo(raw)
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return info, nil
}

// printInfo writes a human-readable descriptor summary to stdout
func printInfo(info *seckey.DeviceInfo) {
	serial := "not reported"
	if info.Serial != nil {
		serial = fmt.Sprintf("%d", *info.Serial)
	}
	fmt.Printf("Serial:              %s\n", serial)
	fmt.Printf("Firmware:            %s\n", info.Version)
	fmt.Printf("Form factor:         %s\n", info.FormFactor)
	fmt.Printf("FIPS series:         %t\n", info.IsFIPS)
	fmt.Printf("Security Key series: %t\n", info.IsSky)
	fmt.Printf("USB supported:       %s\n", info.USBSupported)
	fmt.Printf("USB enabled:         %s\n", info.USBEnabled)
	fmt.Printf("NFC supported:       %s\n", info.NFCSupported)
	fmt.Printf("NFC enabled:         %s\n", info.NFCEnabled)
	fmt.Printf("NFC restricted:      %t\n", info.NFCRestricted)
	fmt.Printf("Config locked:       %t\n", info.ConfigLocked)
	if info.DeviceFlags.Has(seckey.FlagEject) {
		fmt.Printf("Auto-eject timeout:  %ds\n", info.AutoEjectTimeout)
	}
	if info.ChallengeResponseTimeout != 0 {
		fmt.Printf("Chal-resp timeout:   %ds\n", info.ChallengeResponseTimeout)
	}
	if info.TemplateStorageVersion != nil {
		fmt.Printf("Template storage:    %s\n", info.TemplateStorageVersion)
	}
	if info.ImageProcessorVersion != nil {
		fmt.Printf("Image processor:     %s\n", info.ImageProcessorVersion)
	}
}
