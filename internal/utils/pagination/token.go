package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque token for the listing position c.
func EncodeToken(c domain.SubscriptionCursor) string {
	tokenStr := strings.Join([]string{
		c.NextPaymentDate.UTC().Format(timeFormat),
		c.CreatedAt.UTC().Format(timeFormat),
		c.SubscriptionID,
	}, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (domain.SubscriptionCursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return domain.SubscriptionCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return domain.SubscriptionCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	nextPayment, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.SubscriptionCursor{}, fmt.Errorf("invalid pagination token format (payment date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return domain.SubscriptionCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return domain.SubscriptionCursor{
		NextPaymentDate: nextPayment,
		CreatedAt:       createdAt,
		SubscriptionID:  parts[2],
	}, nil
}
