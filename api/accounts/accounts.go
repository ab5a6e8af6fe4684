// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/thor"
)

// Account is the wallet of an address in the pool asset.
type Account struct {
	Address thor.Address `json:"address"`
	Wallet  thor.Address `json:"wallet"`
	Balance string       `json:"balance"`
}

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	pool, err := a.rt.Pool()
	if err != nil {
		return utils.StakingError(err)
	}
	bal, err := a.rt.WalletBalance(addr)
	if err != nil {
		return utils.StakingError(err)
	}
	return utils.WriteJSON(w, &Account{
		Address: addr,
		Wallet:  ledger.EscrowAddress(addr, pool.Record.Asset),
		Balance: ledger.FormatAmount(bal, pool.Record.Scale),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
