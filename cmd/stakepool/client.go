// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/stakeclient"
	"github.com/vechain/stakepool/thor"
)

var clientCommands = []cli.Command{
	{
		Name:   "stake",
		Usage:  "stake whole tokens from the key's wallet",
		Flags:  []cli.Flag{nodeFlag, keyFileFlag, amountFlag},
		Action: stakeAction,
	},
	{
		Name:   "destake",
		Usage:  "withdraw principal and reward of the key's stake",
		Flags:  []cli.Flag{nodeFlag, keyFileFlag},
		Action: destakeAction,
	},
	{
		Name:   "fund",
		Usage:  "move tokens from the key's wallet into the pool",
		Flags:  []cli.Flag{nodeFlag, keyFileFlag, amountFlag},
		Action: fundAction,
	},
	{
		Name:   "info",
		Usage:  "show the stake and wallet of an account",
		Flags:  []cli.Flag{nodeFlag, keyFileFlag, addressFlag},
		Action: infoAction,
	},
	{
		Name:   "pool",
		Usage:  "show the pool",
		Flags:  []cli.Flag{nodeFlag},
		Action: poolAction,
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stakeAction(ctx *cli.Context) error {
	key, err := loadKey(ctx.String(keyFileFlag.Name))
	if err != nil {
		return err
	}
	amount, err := strconv.ParseUint(ctx.String(amountFlag.Name), 10, 64)
	if err != nil {
		return errors.WithMessage(err, "amount")
	}
	stake, err := stakeclient.New(ctx.String(nodeFlag.Name)).Stake(key, amount)
	if err != nil {
		return err
	}
	return printJSON(stake)
}

func destakeAction(ctx *cli.Context) error {
	key, err := loadKey(ctx.String(keyFileFlag.Name))
	if err != nil {
		return err
	}
	settlement, err := stakeclient.New(ctx.String(nodeFlag.Name)).Destake(key)
	if err != nil {
		return err
	}
	return printJSON(settlement)
}

func fundAction(ctx *cli.Context) error {
	key, err := loadKey(ctx.String(keyFileFlag.Name))
	if err != nil {
		return err
	}
	amount := ctx.String(amountFlag.Name)
	if amount == "" {
		return errors.New("amount not specified")
	}
	summary, err := stakeclient.New(ctx.String(nodeFlag.Name)).Fund(key, amount)
	if err != nil {
		return err
	}
	return printJSON(summary)
}

func infoAction(ctx *cli.Context) error {
	var addr thor.Address
	if s := ctx.String(addressFlag.Name); s != "" {
		parsed, err := thor.ParseAddress(s)
		if err != nil {
			return errors.WithMessage(err, "address")
		}
		addr = parsed
	} else {
		key, err := loadKey(ctx.String(keyFileFlag.Name))
		if err != nil {
			return err
		}
		addr = thor.Address(crypto.PubkeyToAddress(key.PublicKey))
	}
	stake, err := stakeclient.New(ctx.String(nodeFlag.Name)).GetStake(addr)
	if err != nil {
		return err
	}
	return printJSON(stake)
}

func poolAction(ctx *cli.Context) error {
	summary, err := stakeclient.New(ctx.String(nodeFlag.Name)).GetPool()
	if err != nil {
		return err
	}
	return printJSON(summary)
}
