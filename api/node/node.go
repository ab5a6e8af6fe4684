// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/health"
)

type Node struct {
	health *health.Health
	clock  clock.Clock
}

func New(health *health.Health, clk clock.Clock) *Node {
	return &Node{
		health,
		clk,
	}
}

func (n *Node) handleHealth(w http.ResponseWriter, _ *http.Request) error {
	status := n.health.Status(n.clock.Now())
	if !status.Healthy {
		w.Header().Set("Content-Type", utils.JSONContentType)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/health").
		Methods(http.MethodGet).
		Name("GET /node/health").
		HandlerFunc(utils.WrapHandlerFunc(n.handleHealth))
}
