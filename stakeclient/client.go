// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakeclient provides an HTTP client to interact with a stake pool node.
// Mutating calls are signed locally; keys never leave the caller.
package stakeclient

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/stakepool/api/accounts"
	"github.com/vechain/stakepool/api/pool"
	"github.com/vechain/stakepool/api/stakes"
	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/thor"
)

// ErrNot200Status is matched by every error carrying a non-200 response.
var ErrNot200Status = errors.New("not 200 status code")

// DefaultTTL is how many ticks a signed request stays valid.
const DefaultTTL = 18

// StatusError is a non-200 response of the node.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error - Status Code %d - %s", e.Status, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNot200Status
}

// Client represents the HTTP client of a stake pool node.
type Client struct {
	url string
	c   *http.Client
	ttl uint64
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
		ttl: DefaultTTL,
	}
}

// GetPool retrieves the pool record, balance and totals.
func (c *Client) GetPool() (*pool.Summary, error) {
	var res pool.Summary
	if err := c.httpGET(c.url+"/pool", &res); err != nil {
		return nil, fmt.Errorf("unable to retrieve pool - %w", err)
	}
	return &res, nil
}

// GetStake retrieves the stake of participant.
func (c *Client) GetStake(participant thor.Address) (*stakes.Stake, error) {
	var res stakes.Stake
	if err := c.httpGET(c.url+"/stakes/"+participant.String(), &res); err != nil {
		return nil, fmt.Errorf("unable to retrieve stake - %w", err)
	}
	return &res, nil
}

// GetAccount retrieves the wallet balance of addr.
func (c *Client) GetAccount(addr thor.Address) (*accounts.Account, error) {
	var res accounts.Account
	if err := c.httpGET(c.url+"/accounts/"+addr.String(), &res); err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}
	return &res, nil
}

// Stake locks amount whole tokens of the key's account.
func (c *Client) Stake(key *ecdsa.PrivateKey, amount uint64) (*stakes.Stake, error) {
	req, err := c.signed(utils.OpStake, strconv.FormatUint(amount, 10), key)
	if err != nil {
		return nil, err
	}
	var res stakes.Stake
	if err := c.httpDo(http.MethodPost, c.url+"/stakes/"+addressOf(key).String(), req, &res); err != nil {
		return nil, fmt.Errorf("unable to stake - %w", err)
	}
	return &res, nil
}

// Destake settles the stake of the key's account.
func (c *Client) Destake(key *ecdsa.PrivateKey) (*stakes.Settlement, error) {
	req, err := c.signed(utils.OpDestake, "", key)
	if err != nil {
		return nil, err
	}
	var res stakes.Settlement
	if err := c.httpDo(http.MethodDelete, c.url+"/stakes/"+addressOf(key).String(), req, &res); err != nil {
		return nil, fmt.Errorf("unable to destake - %w", err)
	}
	return &res, nil
}

// Fund moves a decimal amount from the key's wallet into the pool.
func (c *Client) Fund(key *ecdsa.PrivateKey, amount string) (*pool.Summary, error) {
	req, err := c.signed(utils.OpFund, amount, key)
	if err != nil {
		return nil, err
	}
	var res pool.Summary
	body := &pool.FundRequest{Funder: addressOf(key), SignedRequest: *req}
	if err := c.httpDo(http.MethodPost, c.url+"/pool/fund", body, &res); err != nil {
		return nil, fmt.Errorf("unable to fund - %w", err)
	}
	return &res, nil
}

// signed builds a request expiring ttl ticks after the node's current tick.
func (c *Client) signed(op, amount string, key *ecdsa.PrivateKey) (*utils.SignedRequest, error) {
	p, err := c.GetPool()
	if err != nil {
		return nil, err
	}
	var nonce [8]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	req := &utils.SignedRequest{
		Amount:     amount,
		Expiration: p.Tick + c.ttl,
		Nonce:      binary.BigEndian.Uint64(nonce[:]),
	}
	if err := req.Sign(op, key); err != nil {
		return nil, err
	}
	return req, nil
}

func addressOf(key *ecdsa.PrivateKey) thor.Address {
	return thor.Address(crypto.PubkeyToAddress(key.PublicKey))
}

func (c *Client) httpGET(url string, out any) error {
	return c.httpDo(http.MethodGet, url, nil, out)
}

func (c *Client) httpDo(method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("unable to marshal payload - %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var e utils.ErrorResponse
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = string(bytes.TrimSpace(data))
		}
		return &StatusError{Status: resp.StatusCode, Message: e.Error}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unable to unmarshal response - %w", err)
	}
	return nil
}
