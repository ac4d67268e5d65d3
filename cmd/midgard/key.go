// Copyright 2025 Midgard Labs
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

package main

import (
	"encoding/json"
	"fmt"

	"github.com/midgard-labs/midgard/keys"
	"github.com/midgard-labs/midgard/wallet"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Key management",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a key pair",
	RunE:  generateKey,
}

type generatedKey struct {
	Type      string `json:"type"`
	SecretKey string `json:"secret_key"`
	PublicKey string `json:"public_key"`
	Address   string `json:"address,omitempty"`
}

func init() {
	keyGenerateCmd.Flags().String(
		"type",
		"ed25519",
		"key type (ed25519, vrf, kes)",
	)
	keyGenerateCmd.Flags().String(
		"discrimination",
		"test",
		"address discrimination for ed25519 keys (production, test)",
	)
	keyCmd.AddCommand(keyGenerateCmd)
	rootCmd.AddCommand(keyCmd)
}

func generateKey(cmd *cobra.Command, args []string) error {
	keyType, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}
	var generated generatedKey
	switch keyType {
	case "ed25519":
		discriminationName, err := cmd.Flags().GetString("discrimination")
		if err != nil {
			return err
		}
		discrimination, err := keys.ParseDiscrimination(discriminationName)
		if err != nil {
			return err
		}
		account, err := wallet.NewAccount(discrimination)
		if err != nil {
			return err
		}
		generated = generatedKey{
			Type:      keyType,
			SecretKey: account.SecretKeyBech32(),
			PublicKey: account.PublicKeyBech32(),
			Address:   account.Address(),
		}
	case "vrf":
		keyPair, err := keys.NewVrfKeyPair()
		if err != nil {
			return err
		}
		generated = generatedKey{
			Type:      keyType,
			SecretKey: keyPair.SecretKeyBech32(),
			PublicKey: keyPair.PublicKeyBech32(),
		}
	case "kes":
		keyPair, err := keys.NewKesKeyPair()
		if err != nil {
			return err
		}
		generated = generatedKey{
			Type:      keyType,
			SecretKey: keyPair.SecretKeyBech32(),
			PublicKey: keyPair.PublicKeyBech32(),
		}
	default:
		return fmt.Errorf("unknown key type: %q", keyType)
	}
	out, err := json.MarshalIndent(generated, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
