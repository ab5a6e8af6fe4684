// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/thor"
)

type Stakes struct {
	rt       *runtime.Runtime
	verifier *utils.Verifier
}

func New(rt *runtime.Runtime, verifier *utils.Verifier) *Stakes {
	return &Stakes{
		rt,
		verifier,
	}
}

func (s *Stakes) getStake(participant thor.Address) (*Stake, error) {
	pool, err := s.rt.Pool()
	if err != nil {
		return nil, err
	}
	summary, err := s.rt.StakeOf(participant)
	if err != nil {
		return nil, err
	}
	return convertStake(participant, summary, pool.Record.Scale), nil
}

func (s *Stakes) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	participant, err := thor.ParseAddress(mux.Vars(req)["participant"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "participant"))
	}
	stake, err := s.getStake(participant)
	if err != nil {
		return utils.StakingError(err)
	}
	return utils.WriteJSON(w, stake)
}

func (s *Stakes) handleStake(w http.ResponseWriter, req *http.Request) error {
	participant, err := thor.ParseAddress(mux.Vars(req)["participant"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "participant"))
	}
	var body utils.SignedRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := strconv.ParseUint(body.Amount, 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	if err := s.verifier.Verify(utils.OpStake, participant, &body); err != nil {
		return err
	}

	if err := s.rt.Stake(participant, amount); err != nil {
		return utils.StakingError(err)
	}
	stake, err := s.getStake(participant)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, stake)
}

func (s *Stakes) handleDestake(w http.ResponseWriter, req *http.Request) error {
	participant, err := thor.ParseAddress(mux.Vars(req)["participant"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "participant"))
	}
	var body utils.SignedRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount != "" {
		return utils.BadRequest(errors.New("amount: destake takes no amount"))
	}
	if err := s.verifier.Verify(utils.OpDestake, participant, &body); err != nil {
		return err
	}

	pool, err := s.rt.Pool()
	if err != nil {
		return utils.StakingError(err)
	}
	settlement, err := s.rt.Destake(participant)
	if err != nil {
		return utils.StakingError(err)
	}
	return utils.WriteJSON(w, convertSettlement(settlement, pool.Record.Scale))
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{participant}").
		Methods(http.MethodGet).
		Name("GET /stakes/{participant}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/{participant}").
		Methods(http.MethodPost).
		Name("POST /stakes/{participant}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/{participant}").
		Methods(http.MethodDelete).
		Name("DELETE /stakes/{participant}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleDestake))
}
