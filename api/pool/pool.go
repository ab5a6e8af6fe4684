// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/runtime"
)

type Pool struct {
	rt       *runtime.Runtime
	verifier *utils.Verifier
}

func New(rt *runtime.Runtime, verifier *utils.Verifier) *Pool {
	return &Pool{
		rt,
		verifier,
	}
}

func (p *Pool) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	summary, err := p.rt.Pool()
	if err != nil {
		return utils.StakingError(err)
	}
	return utils.WriteJSON(w, convertPool(summary, p.rt.Clock().Now()))
}

func (p *Pool) handleFund(w http.ResponseWriter, req *http.Request) error {
	var body FundRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	summary, err := p.rt.Pool()
	if err != nil {
		return utils.StakingError(err)
	}
	units, err := ledger.ParseAmount(body.Amount, summary.Record.Scale)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	if err := p.verifier.Verify(utils.OpFund, body.Funder, &body.SignedRequest); err != nil {
		return err
	}

	if err := p.rt.Fund(body.Funder, units); err != nil {
		return utils.StakingError(err)
	}
	if summary, err = p.rt.Pool(); err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPool(summary, p.rt.Clock().Now()))
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pool").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/fund").
		Methods(http.MethodPost).
		Name("POST /pool/fund").
		HandlerFunc(utils.WrapHandlerFunc(p.handleFund))
}
