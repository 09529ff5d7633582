package dropio

import (
	"context"
	"net/http"
	"strconv"

	"github.com/leca/dropio-go/internal/param"
)

// CreatePingbackSubscription registers a URL that receives a POST whenever
// one of the selected events happens in the drop.
func (c *Client) CreatePingbackSubscription(ctx context.Context, dropName, pingbackURL string, events Events) (*Subscription, error) {
	p := param.New()
	p.Add("type", string(SubscriptionPingback))
	p.Add("url", pingbackURL)
	events.apply(p)
	return c.createSubscription(ctx, dropName, p)
}

// EmailSubscription carries the fields of an email subscription.
type EmailSubscription struct {
	Email          string
	Message        string
	WelcomeFrom    string
	WelcomeSubject string
	WelcomeMessage string
}

// CreateEmailSubscription subscribes an email address to the drop's events.
func (c *Client) CreateEmailSubscription(ctx context.Context, dropName string, sub EmailSubscription, events Events) (*Subscription, error) {
	p := param.New()
	p.Add("type", string(SubscriptionEmail))
	p.Add("email", sub.Email)
	add := func(key, val string) {
		if val != "" {
			p.Add(key, val)
		}
	}
	add("message", sub.Message)
	add("welcome_from", sub.WelcomeFrom)
	add("welcome_subject", sub.WelcomeSubject)
	add("welcome_message", sub.WelcomeMessage)
	events.apply(p)
	return c.createSubscription(ctx, dropName, p)
}

// CreateTwitterSubscription posts a status update for the drop's events.
func (c *Client) CreateTwitterSubscription(ctx context.Context, dropName, username, password, message string, events Events) (*Subscription, error) {
	p := param.New()
	p.Add("type", string(SubscriptionTwitter))
	p.Add("username", username)
	p.Add("password", password)
	if message != "" {
		p.Add("message", message)
	}
	events.apply(p)
	return c.createSubscription(ctx, dropName, p)
}

func (c *Client) createSubscription(ctx context.Context, dropName string, p *param.Set) (*Subscription, error) {
	body, err := c.call(ctx, http.MethodPost, c.subscriptionsURL(dropName), p, bodyForm)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "subscription")
	if err != nil {
		return nil, err
	}
	return mapSubscription(dropName, root), nil
}

// ListSubscriptions returns one page of the drop's subscriptions.
func (c *Client) ListSubscriptions(ctx context.Context, dropName string, page int) ([]*Subscription, error) {
	p := param.New()
	p.Add("page", strconv.Itoa(page))
	body, err := c.call(ctx, http.MethodGet, c.subscriptionsURL(dropName), p, bodyQuery)
	if err != nil {
		return nil, err
	}
	root, err := parseRoot(body, "subscriptions")
	if err != nil {
		return nil, err
	}
	subs := make([]*Subscription, 0, len(root.Children))
	for _, n := range root.All("subscription") {
		subs = append(subs, mapSubscription(dropName, n))
	}
	return subs, nil
}

// DeleteSubscription removes one subscription by id.
func (c *Client) DeleteSubscription(ctx context.Context, dropName string, id int) error {
	url := c.subscriptionsURL(dropName) + strconv.Itoa(id)
	_, err := c.call(ctx, http.MethodDelete, url, nil, bodyQuery)
	return err
}

func (c *Client) subscriptionsURL(dropName string) string {
	return c.apiURL("drops/" + seg(dropName) + "/subscriptions/")
}
