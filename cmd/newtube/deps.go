package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucas-ellwanger/newtube/pkg/ai"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	configs "github.com/lucas-ellwanger/newtube/pkg/configs/server"
	kdb "github.com/lucas-ellwanger/newtube/pkg/domain/newtube/db"
	kpg "github.com/lucas-ellwanger/newtube/pkg/domain/newtube/db/postgres"
	"github.com/lucas-ellwanger/newtube/pkg/storage"
	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
)

func loadConfig(opts *RootOptions) (configs.Config, error) {
	if opts.ConfigPath == "" {
		return configs.Config{}, errors.New("--config (or NEWTUBE_CONFIG) is required")
	}
	conf, err := configs.Load(opts.ConfigPath)
	if err != nil {
		return configs.Config{}, fmt.Errorf("can not read configuration: %w", err)
	}
	return conf, nil
}

func openDatabase(ctx context.Context, conf configs.DatabaseConfig) (kdb.NewtubeDatabase, error) {
	db, err := kpg.New(
		ctx, conf.URI,
		kpg.WithMaxConns(conf.MaxConns),
		kpg.WithSchemaCheckInterval(conf.SchemaCheckInterval.Duration()),
	)
	if err != nil {
		return nil, fmt.Errorf("can not connect to database: %w", err)
	}
	return db, nil
}

func tokenVerifier(conf configs.AuthConfig) (*auth.Verifier, error) {
	opts := []auth.VerifierOption{auth.WithLeeway(conf.Leeway.Duration())}
	if conf.Issuer != "" {
		opts = append(opts, auth.WithIssuer(conf.Issuer))
	}

	switch conf.Algorithm {
	case "HS256":
		if conf.Secret == "" {
			return nil, errors.New("auth.secret is required for HS256")
		}
		return auth.HS256([]byte(conf.Secret), opts...), nil
	case "RS256":
		return auth.RS256([]byte(conf.PublicKey), opts...)
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", conf.Algorithm)
	}
}

func videoHost(conf configs.MuxConfig) *mux.Client {
	return mux.New(mux.Config{
		TokenId:     conf.TokenId,
		TokenSecret: conf.TokenSecret,
		CORSOrigin:  conf.CORSOrigin,
	})
}

func mediaStorage(ctx context.Context, conf configs.StorageConfig) (*storage.Bucket, error) {
	return storage.New(ctx, storage.Config{
		Bucket:          conf.Bucket,
		Region:          conf.Region,
		Endpoint:        conf.Endpoint,
		AccessKeyId:     conf.AccessKeyId,
		SecretAccessKey: conf.SecretAccessKey,
		PublicUrl:       conf.PublicUrl,
	})
}

func generator(ctx context.Context, conf configs.AIConfig) (*ai.GenAI, error) {
	return ai.New(ctx, ai.Config{
		APIKey:     conf.APIKey,
		TextModel:  conf.TextModel,
		ImageModel: conf.ImageModel,
	})
}
