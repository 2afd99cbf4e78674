package dynamodb

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrInvalidCursor is returned when a pagination cursor cannot be decoded
// or does not belong to the partition being read.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// encodeCursor turns a LastEvaluatedKey into an opaque string.
// An empty key encodes to the empty cursor.
func encodeCursor(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}

	plain := make(map[string]string, len(key))
	for name, av := range key {
		s, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("cursor attribute %s is not a string", name)
		}
		plain[name] = s.Value
	}

	raw, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decodeCursor reverses encodeCursor. The decoded key must carry the
// expected partition key so one caller's cursor cannot page another's data.
func decodeCursor(cursor, expectedPK string) (map[string]types.AttributeValue, error) {
	if cursor == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var plain map[string]string
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if plain[attrPK] != expectedPK || plain[attrSK] == "" {
		return nil, ErrInvalidCursor
	}

	key := make(map[string]types.AttributeValue, len(plain))
	for name, value := range plain {
		key[name] = &types.AttributeValueMemberS{Value: value}
	}
	return key, nil
}
