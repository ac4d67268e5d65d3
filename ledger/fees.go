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

package ledger

// LinearFees is the fee schedule applied to submitted transactions. The
// components are combined additively; there is no per-byte or per-input
// scaling.
type LinearFees struct {
	Constant    uint64 `json:"constant"    mapstructure:"constant"`
	Coefficient uint64 `json:"coefficient" mapstructure:"coefficient"`
	Certificate uint64 `json:"certificate" mapstructure:"certificate"`
}

// Fee returns the total fee owed for a transaction. The certificate
// component only applies when a certificate is attached.
func (f LinearFees) Fee(hasCertificate bool) uint64 {
	fee := f.Constant + f.Coefficient
	if hasCertificate {
		fee += f.Certificate
	}
	return fee
}
