// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakeinfo

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/thor"
)

var slotStakeInfos = thor.BytesToBytes32([]byte("stake-infos"))

// Info is the stake record of one participant.
// StakedAt holds the tick of the last transition, in either direction.
type Info struct {
	Staked   bool
	StakedAt uint64
}

// Service stores one Info per participant, keyed by the participant's derived record key.
type Service struct {
	program thor.Address
	infos   *solidity.Mapping[thor.Address, Info]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		program: sctx.Address(),
		infos:   solidity.NewMapping[thor.Address, Info](sctx, slotStakeInfos),
	}
}

// Get returns the record of participant. A participant who never staked reads as Unstaked.
func (s *Service) Get(participant thor.Address) (Info, error) {
	info, err := s.infos.Get(authority.InfoKey(s.program, participant))
	if err != nil {
		return Info{}, errors.Wrap(err, "failed to get stake info")
	}
	return info, nil
}

// Exists reports whether participant has ever staked.
func (s *Service) Exists(participant thor.Address) (bool, error) {
	return s.infos.Exists(authority.InfoKey(s.program, participant))
}

// MarkStaked moves participant into Staked at tick now.
func (s *Service) MarkStaked(participant thor.Address, now uint64) error {
	return s.set(participant, Info{Staked: true, StakedAt: now})
}

// MarkUnstaked moves participant into Unstaked at tick now.
func (s *Service) MarkUnstaked(participant thor.Address, now uint64) error {
	return s.set(participant, Info{Staked: false, StakedAt: now})
}

func (s *Service) set(participant thor.Address, info Info) error {
	if err := s.infos.Set(authority.InfoKey(s.program, participant), info); err != nil {
		return errors.Wrap(err, "failed to set stake info")
	}
	return nil
}
