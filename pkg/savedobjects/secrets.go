package savedobjects

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/stelgo/actionhub/pkg/protocol"
)

const secretsObjectType = "action_secrets"

// EncryptedStore keeps per-action credentials as AES-GCM sealed saved
// objects. It implements protocol.SecretsClient.
type EncryptedStore struct {
	objects protocol.SavedObjectsClient
	aead    cipher.AEAD
}

// NewEncryptedStore builds a store sealed with the given key. The key must
// be 16, 24 or 32 bytes.
func NewEncryptedStore(objects protocol.SavedObjectsClient, encryptionKey []byte) (*EncryptedStore, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid secrets encryption key: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &EncryptedStore{objects: objects, aead: aead}, nil
}

// Put seals and stores the credentials for an action instance.
func (s *EncryptedStore) Put(ctx context.Context, actionID string, secrets map[string]any) error {
	plaintext, err := json.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("failed to encode secrets for action '%s': %w", actionID, err)
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	sealed := s.aead.Seal(nonce, nonce, plaintext, []byte(actionID))

	return s.objects.Create(ctx, secretsObjectType, actionID, map[string]any{
		"payload": base64.StdEncoding.EncodeToString(sealed),
	})
}

// Decrypt returns the credentials stored for an action instance.
func (s *EncryptedStore) Decrypt(ctx context.Context, actionID string) (map[string]any, error) {
	attributes, err := s.objects.Get(ctx, secretsObjectType, actionID)
	if err != nil {
		return nil, err
	}

	encoded, _ := attributes["payload"].(string)

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("corrupt secrets payload for action '%s': %w", actionID, err)
	}

	if len(sealed) < s.aead.NonceSize() {
		return nil, fmt.Errorf("corrupt secrets payload for action '%s'", actionID)
	}

	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(actionID))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secrets for action '%s': %w", actionID, err)
	}

	var secrets map[string]any
	if err := json.Unmarshal(plaintext, &secrets); err != nil {
		return nil, fmt.Errorf("failed to decode secrets for action '%s': %w", actionID, err)
	}

	return secrets, nil
}
