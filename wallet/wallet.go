// Copyright 2024 The ishishnode Authors
// This file is part of the ishishnode library.
//
// The ishishnode library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// The ishishnode library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU Lesser
// General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ishishnode library. If not, see <http://www.gnu.org/licenses/>.

// Package wallet opens the encrypted keystore file backing a node's
// signing identity. The keystore format itself is not reimplemented:
// this package is a thin, typed wrapper around go-ethereum's own
// scrypt-encrypted keystore reader.
package wallet

import (
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

// Signer is the identity a node mines as. The underlying key is kept
// unexported since nothing in this program signs anything yet; only the
// address is needed to set a block's coinbase.
type Signer struct {
	Address common.Address
	key     *keystore.Key
}

// Open decrypts the keystore file dir/name using password and returns
// the signer it names. name defaults to "default" by convention at the
// call site (see node.DefaultWalletName), not here.
func Open(dir, name, password string) (Signer, error) {
	path := filepath.Join(dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return Signer{}, err
	}

	key, err := keystore.DecryptKey(data, password)
	if err != nil {
		return Signer{}, err
	}

	return Signer{Address: key.Address, key: key}, nil
}
