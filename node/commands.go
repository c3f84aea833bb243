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

package node

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/ishish222/ishishnode/consensus"
	"github.com/ishish222/ishishnode/wallet"
)

// dispatch runs the named console command, prompting for any further
// input it needs via console. Unrecognized commands are reported and
// otherwise ignored.
func (n *Node) dispatch(command string, console *Console) {
	switch command {
	case "open":
		n.cmdOpen(console)
	case "start":
		n.cmdStart()
	case "stop":
		n.cmdStop()
	case "get_balance":
		n.cmdGetBalance(console)
	case "print_pool":
		n.cmdPrintPool()
	case "send_ish":
		n.cmdSendIsh(console)
	default:
		fmt.Printf("Unknown command: %s\n", command)
	}
}

func (n *Node) cmdOpen(console *Console) {
	name, err := console.ReadLine(fmt.Sprintf("Enter the name of the wallet [%s]:", n.WalletName))
	if err != nil {
		log.Warn("node: open: failed to read wallet name", "err", err)
		return
	}
	if name == "" {
		name = n.WalletName
	}

	password, err := console.ReadLine("Please enter a password for the wallet:")
	if err != nil {
		log.Warn("node: open: failed to read password", "err", err)
		return
	}

	signer, err := wallet.Open(n.DataDir, name, password)
	if err != nil {
		fmt.Printf("Failed to open wallet: %v\n", err)
		return
	}
	n.signer = &signer
	fmt.Printf("Opened wallet: %s\n", signer.Address)
}

func (n *Node) cmdStart() {
	if n.signer == nil {
		fmt.Println("Please open a wallet first")
		return
	}
	n.startMining()
}

func (n *Node) cmdStop() {
	n.stopMining()
}

func (n *Node) cmdGetBalance(console *Console) {
	input, err := console.ReadLine("Enter the address to check [coinbase]:")
	if err != nil {
		log.Warn("node: get_balance: failed to read address", "err", err)
		return
	}

	addr, ok := n.resolveAddress(input)
	if !ok {
		return
	}
	fmt.Printf("Balance of %s: %d\n", addr, n.Balance(addr))
}

func (n *Node) cmdPrintPool() {
	pending := n.pool.All()
	fmt.Printf("Current pool (%d): %v\n", len(pending), pending)
}

func (n *Node) cmdSendIsh(console *Console) {
	srcInput, err := console.ReadLine("Enter the source address [coinbase]:")
	if err != nil {
		log.Warn("node: send_ish: failed to read source address", "err", err)
		return
	}
	src, ok := n.resolveAddress(srcInput)
	if !ok {
		return
	}

	dstInput, err := console.ReadLine("Enter the target address:")
	if err != nil {
		log.Warn("node: send_ish: failed to read target address", "err", err)
		return
	}
	dst, ok := n.resolveAddress(dstInput)
	if !ok {
		return
	}

	amountInput, err := console.ReadLine("How much ish to send?")
	if err != nil {
		log.Warn("node: send_ish: failed to read amount", "err", err)
		return
	}
	amount, err := strconv.ParseUint(amountInput, 10, 64)
	if err != nil {
		fmt.Printf("Invalid amount: %v\n", err)
		return
	}

	fmt.Printf("Sending %d ish from %s to %s\n", amount, src, dst)
	n.broadcastTransaction(consensus.Transaction{From: src, To: dst, Amount: amount})
}

// resolveAddress parses input as a hex address, or falls back to the
// currently opened wallet's address if input is empty.
func (n *Node) resolveAddress(input string) (common.Address, bool) {
	if input == "" {
		if n.signer == nil {
			fmt.Println("Please open a wallet first")
			return common.Address{}, false
		}
		return n.signer.Address, true
	}
	return common.HexToAddress(input), true
}
