package clients

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coursecatalog/backend/config"
	"coursecatalog/backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ProfileService resolves user ids into profiles.
type ProfileService interface {
	// FilterByIDs returns the raw JSON answer of the users service.
	FilterByIDs(ids []string, page domain.Page, authorization string) (json.RawMessage, error)
}

// PaymentsService reads creator wallets.
type PaymentsService interface {
	WalletBalance(creatorID string) (float64, error)
}

// SubscriptionsService prices and propagates course cancellations.
type SubscriptionsService interface {
	CancelFee(course domain.Course) (float64, error)
	NotifyCancellation(course domain.Course) error
}

type Services struct {
	Profiles      ProfileService
	Payments      PaymentsService
	Subscriptions SubscriptionsService
}

// NewServices builds the clients from the configured address table.
func NewServices(cfg *config.Config, log *logrus.Logger) Services {
	return Services{
		Profiles:      NewProfileClient(cfg.ServiceURL(config.ServiceUsers), cfg.HTTPClientTimeout, log),
		Payments:      NewPaymentsClient(cfg.ServiceURL(config.ServicePayments), cfg.HTTPClientTimeout, log),
		Subscriptions: NewSubscriptionsClient(cfg.ServiceURL(config.ServiceSubscriptions), cfg.HTTPClientTimeout, log),
	}
}

type ProfileClient struct{ client }

func NewProfileClient(baseURL string, timeout time.Duration, log *logrus.Logger) *ProfileClient {
	return &ProfileClient{newClient(config.ServiceUsers, baseURL, timeout, log)}
}

func (c *ProfileClient) FilterByIDs(ids []string, page domain.Page, authorization string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("limit", strconv.Itoa(page.Limit))
	query.Set("offset", strconv.Itoa(page.Offset))

	body, err := c.get("users/filter-by-ids", query, map[string]string{fiber.HeaderAuthorization: authorization})
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New("users service returned invalid JSON")
	}
	return json.RawMessage(body), nil
}

type PaymentsClient struct{ client }

func NewPaymentsClient(baseURL string, timeout time.Duration, log *logrus.Logger) *PaymentsClient {
	return &PaymentsClient{newClient(config.ServicePayments, baseURL, timeout, log)}
}

func (c *PaymentsClient) WalletBalance(creatorID string) (float64, error) {
	body, err := c.get("payments/wallet/"+url.PathEscape(creatorID), nil, nil)
	if err != nil {
		return 0, err
	}

	var wallet struct {
		Balance json.Number `json:"balance"`
	}
	if err := json.Unmarshal(body, &wallet); err != nil {
		return 0, errors.Wrap(err, "decode wallet")
	}
	balance, err := wallet.Balance.Float64()
	return balance, errors.Wrap(err, "wallet balance")
}

type SubscriptionsClient struct{ client }

func NewSubscriptionsClient(baseURL string, timeout time.Duration, log *logrus.Logger) *SubscriptionsClient {
	return &SubscriptionsClient{newClient(config.ServiceSubscriptions, baseURL, timeout, log)}
}

func (c *SubscriptionsClient) CancelFee(course domain.Course) (float64, error) {
	query := courseQuery(course)
	body, err := c.get("subscriptions/"+url.PathEscape(course.ID)+"/enrollments/cancel-fee", query, nil)
	if err != nil {
		return 0, err
	}

	fee, err := strconv.ParseFloat(strings.Trim(strings.TrimSpace(string(body)), `"`), 64)
	return fee, errors.Wrap(err, "decode cancel fee")
}

func (c *SubscriptionsClient) NotifyCancellation(course domain.Course) error {
	query := courseQuery(course)
	query.Set("course_name", course.Name)
	_, err := c.patch("subscriptions/"+url.PathEscape(course.ID)+"/enrollments", query)
	return err
}

func courseQuery(course domain.Course) url.Values {
	query := url.Values{}
	query.Set("creator_id", course.CreatorID)
	query.Set("price", strconv.FormatFloat(course.Price, 'f', -1, 64))
	query.Set("sub_id", strconv.Itoa(course.SubscriptionID))
	return query
}
