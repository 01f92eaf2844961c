package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

const (
	defaultEnvFile = ".env"

	defaultOrdersCollection   = "orders"
	defaultProductsCollection = "products"
	defaultCountersCollection = "counters"
	defaultOrderEventsTopic   = "order-events"

	defaultCODFee            = "2.000"
	defaultWholesaleFreeOver = "500.000"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Firestore FirestoreConfig
	Firebase  FirebaseConfig
	PubSub    PubSubConfig
	Checkout  CheckoutConfig
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
	EmulatorHost    string

	OrdersCollection   string
	ProductsCollection string
	CountersCollection string
}

// FirebaseConfig stores identity-platform settings.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

// PubSubConfig names the topic order events are published to.
type PubSubConfig struct {
	ProjectID        string
	OrderEventsTopic string
}

// CheckoutConfig carries the pricing tunables. Fees are decimal dinar
// strings in the environment and parsed into millimes here, the only place
// where the decimal representation crosses into the module.
type CheckoutConfig struct {
	CODFee                domain.Millimes
	WholesaleFreeShipping domain.Millimes
}

// Load reads the optional .env file and the process environment into a
// Config, applying defaults for every tunable.
func Load() (Config, error) {
	return LoadFile(defaultEnvFile)
}

// LoadFile is Load with an explicit .env path; a missing file is not an
// error, the process environment then stands alone.
func LoadFile(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	codFee, err := parseAmount("CHECKOUT_COD_FEE", defaultCODFee)
	if err != nil {
		return Config{}, err
	}
	freeOver, err := parseAmount("CHECKOUT_WHOLESALE_FREE_SHIPPING_OVER", defaultWholesaleFreeOver)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Firestore: FirestoreConfig{
			ProjectID:          getenv("FIRESTORE_PROJECT_ID", getenv("GOOGLE_CLOUD_PROJECT", "")),
			CredentialsFile:    getenv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			EmulatorHost:       getenv("FIRESTORE_EMULATOR_HOST", ""),
			OrdersCollection:   getenv("FIRESTORE_ORDERS_COLLECTION", defaultOrdersCollection),
			ProductsCollection: getenv("FIRESTORE_PRODUCTS_COLLECTION", defaultProductsCollection),
			CountersCollection: getenv("FIRESTORE_COUNTERS_COLLECTION", defaultCountersCollection),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getenv("FIREBASE_PROJECT_ID", getenv("GOOGLE_CLOUD_PROJECT", "")),
			CredentialsFile: getenv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:        getenv("PUBSUB_PROJECT_ID", getenv("GOOGLE_CLOUD_PROJECT", "")),
			OrderEventsTopic: getenv("PUBSUB_ORDER_EVENTS_TOPIC", defaultOrderEventsTopic),
		},
		Checkout: CheckoutConfig{
			CODFee:                codFee,
			WholesaleFreeShipping: freeOver,
		},
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseAmount(key, fallback string) (domain.Millimes, error) {
	raw := getenv(key, fallback)
	amount, err := domain.ParseMillimes(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, raw, err)
	}
	return amount, nil
}
