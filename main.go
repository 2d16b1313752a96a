package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"ddb-archiver/internal/archive"
	"ddb-archiver/internal/config"
	"ddb-archiver/internal/dynamo"
	"ddb-archiver/internal/nats"
)

func main() {
	// Setup logger
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := config.LoadConfig(os.Getenv("ARCHIVER_CONFIG"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown log level %q, using info", cfg.Logging.Level)
	}

	logger.Infof("Starting archiver, destination table: %s", cfg.DestinationTable)

	ctx := context.Background()

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.DynamoDB.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.DynamoDB.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logger.Fatalf("Failed to load AWS config: %v", err)
	}

	// One client per process, reused across invocations
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDB.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDB.Endpoint)
		}
	})

	if err := dynamo.NewChecker(client, logger).CheckTable(ctx, cfg.DestinationTable); err != nil {
		logger.Warnf("Archive table check failed: %v", err)
	}

	var notifier archive.Notifier
	var publisher *nats.Publisher
	if cfg.NATS.Enabled() {
		publisher, err = nats.NewPublisher(
			cfg.NATS.URL,
			cfg.NATS.Subject,
			cfg.NATS.MaxReconnect,
			cfg.NATS.ReconnectWait,
			logger,
		)
		if err != nil {
			logger.Warnf("Archive notifications disabled: %v", err)
		} else {
			notifier = publisher
		}
	}

	archiver := archive.NewArchiver(dynamo.NewStore(client, logger), cfg.DestinationTable, notifier, logger)

	lambda.StartWithOptions(archiver.Handle,
		lambda.WithEnableSIGTERM(func() {
			logger.Info("Received SIGTERM, shutting down...")
			if publisher != nil {
				publisher.Close()
			}
		}),
	)
}
