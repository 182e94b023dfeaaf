package app

import (
	"context"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"
)

// secret names are full resource paths, versions included
func accessSecretVersion(client *secretmanager.Client, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	}

	result, err := client.AccessSecretVersion(context.Background(), req)
	if err != nil {
		return "", err
	}

	return string(result.Payload.Data), nil
}

func readSecretInto(client *secretmanager.Client, label string, secretName string, target *string) {
	if *target != "" || secretName == "" {
		return
	}
	log.Debug("[GSM] Reading ", label)
	value, err := accessSecretVersion(client, secretName)
	if err != nil {
		log.Fatalf("[GSM] Failed to access %s: %v", label, err)
	}
	*target = value
	log.Info("[GSM] Successfully read ", label)
}

func readKeysFromGSM() {
	if !Config.GoogleSecretManager.Enabled {
		log.Debug("[GSM] Google Secret Manager is disabled")
		return
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Fatalf("[GSM] Failed to create secretmanager client: %v", err)
	}
	defer client.Close()

	readSecretInto(client, "mongodb uri", Config.GoogleSecretManager.MongoSecretName, &Config.MongoDB.URI)
	readSecretInto(client, "rabbitmq url", Config.GoogleSecretManager.RabbitMQSecretName, &Config.RabbitMQ.URL)
	readSecretInto(client, "lnd macaroon", Config.GoogleSecretManager.LndSecretName, &Config.Lnd.MacaroonHex)
	readSecretInto(client, "nostr mnemonic", Config.GoogleSecretManager.NostrSecretName, &Config.Nostr.Mnemonic)
}
