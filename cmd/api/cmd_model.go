package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"MentalHealthSentiment_WebProject/internal/sentiment"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect and distribute model artifacts",
}

var modelInspectCmd = &cobra.Command{
	Use:   "inspect [dir]",
	Short: "Validate the artifacts in a model directory and print a summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		} else {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			dir = cfg.Model.Dir
		}
		return inspectModel(cmd.OutOrStdout(), dir)
	},
}

var modelFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download artifacts from the model store into MODEL_DIR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ms, err := newModelStore(cfg, logger)
		if err != nil {
			return err
		}
		if err := ms.Fetch(cmd.Context(), cfg.Model.Dir); err != nil {
			return err
		}
		return inspectModel(cmd.OutOrStdout(), cfg.Model.Dir)
	},
}

var modelPublishCmd = &cobra.Command{
	Use:   "publish [dir]",
	Short: "Validate local artifacts and upload them to the model store",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		dir := cfg.Model.Dir
		if len(args) == 1 {
			dir = args[0]
		}
		// 깨진 모델은 올리지 않음
		if _, err := sentiment.LoadPipeline(dir); err != nil {
			return err
		}
		ms, err := newModelStore(cfg, logger)
		if err != nil {
			return err
		}
		return ms.Publish(cmd.Context(), dir)
	},
}

func inspectModel(w io.Writer, dir string) error {
	vf, err := os.Open(filepath.Join(dir, sentiment.VectorizerFile))
	if err != nil {
		return fmt.Errorf("%w: %v", sentiment.ErrModelUnavailable, err)
	}
	defer vf.Close()
	vectorizer, err := sentiment.DecodeVectorizer(vf)
	if err != nil {
		return err
	}

	cf, err := os.Open(filepath.Join(dir, sentiment.ClassifierFile))
	if err != nil {
		return fmt.Errorf("%w: %v", sentiment.ErrModelUnavailable, err)
	}
	defer cf.Close()
	classifier, err := sentiment.DecodeClassifier(cf)
	if err != nil {
		return err
	}

	if _, err := sentiment.NewPipeline(vectorizer, classifier); err != nil {
		return err
	}

	fmt.Fprintf(w, "model dir:  %s\n", dir)
	fmt.Fprintf(w, "features:   %d\n", vectorizer.NumFeatures())
	fmt.Fprintf(w, "classes:    %v\n", classifier.Classes())
	for _, label := range classifier.Classes() {
		l := sentiment.MapLabel(label)
		fmt.Fprintf(w, "  %3d -> %-8s %s\n", label, l.Sentiment, l.Prediction)
	}
	return nil
}

func init() {
	modelCmd.AddCommand(modelInspectCmd, modelFetchCmd, modelPublishCmd)
}
