package blizzard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/oksasatya/bg-companion-api/pkg/apperror"
)

const (
	CardTypeMinion = "minion"
	CardTypeHero   = "hero"
	CardTypeSpell  = "spell"

	pageSize       = "24"
	fetchFailedMsg = "Failed to fetch cards"
)

var ErrTokenUnavailable = apperror.New(apperror.Upstream, "Failed to fetch access token")

type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

// CardQuery narrows a Battlegrounds card listing.
type CardQuery struct {
	CardType   string
	Tiers      []string
	MinionType string
}

// Client talks to the Hearthstone card search API. Requests carry a bearer
// token from the OAuth2 client-credentials flow; the token is reused until it
// expires. Card payloads are returned untouched.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	// Token requests use their own client with the same timeout.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	hc := cc.Client(tokenCtx)
	hc.Timeout = timeout
	return &Client{baseURL: cfg.BaseURL, http: hc}
}

// Params builds the query string for q.
func (q CardQuery) Params() url.Values {
	params := url.Values{}
	params.Set("locale", "en_US")
	params.Set("gameMode", "battlegrounds")
	params.Set("sort", "tier:asc")
	params.Set("pageSize", pageSize)
	params.Set("bgCardType", q.CardType)
	for _, t := range q.Tiers {
		params.Add("tier", t)
	}
	if q.MinionType != "" && !strings.EqualFold(q.MinionType, "all") {
		params.Set("minionType", strings.ToLower(q.MinionType))
	}
	return params
}

// FetchCards returns the raw JSON card listing for q.
func (c *Client) FetchCards(ctx context.Context, q CardQuery) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Params().Encode(), nil)
	if err != nil {
		return nil, apperror.InternalErr(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return nil, apperror.Wrap(ErrTokenUnavailable.Kind, ErrTokenUnavailable.Message, err)
		}
		return nil, apperror.Wrap(apperror.Upstream, fetchFailedMsg, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, fetchFailedMsg, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, upstreamError(res.StatusCode, body)
	}
	if !json.Valid(body) {
		return nil, apperror.Wrap(apperror.Upstream, fetchFailedMsg, errors.New("response is not json"))
	}
	return json.RawMessage(body), nil
}

func upstreamError(status int, body []byte) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := fetchFailedMsg
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		msg = payload.Error.Message
	}
	return apperror.Wrap(apperror.Upstream, msg, fmt.Errorf("card api status %d", status))
}
