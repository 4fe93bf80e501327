package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSM loads every parameter under AWS_SSM_PATH into cfg when that key is set.
// The last path element of each parameter is its key; values already present
// in the environment are kept.
func LoadSSM(ctx context.Context, cfg map[string]string) error {
	prefix := GetString(cfg, "AWS_SSM_PATH", "")
	if prefix == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	return OverlaySSM(ctx, ssm.NewFromConfig(awsCfg), prefix, cfg)
}

// OverlaySSM copies the parameters found under prefix into cfg.
func OverlaySSM(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string, cfg map[string]string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("read ssm parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			key := path.Base(aws.ToString(p.Name))
			if existing, ok := cfg[key]; ok && existing != "" {
				continue
			}
			cfg[key] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("path", prefix).Int("parameters", loaded).Msg("loaded configuration from SSM")
	return nil
}
