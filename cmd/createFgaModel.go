// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/openfga/go-sdk/client"
	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/authorization"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/openfga"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
)

const StoreName = "garage-service"

type fgaModelOptions struct {
	apiURL   string
	apiToken string
	storeID  string
	verbose  bool
}

type fgaModelResult struct {
	StoreID      string `json:"store_id"`
	ModelID      string `json:"model_id"`
	StoreCreated bool   `json:"store_created"`
}

// createFgaModelCmd writes the garage authorization model to openfga
var createFgaModelCmd = &cobra.Command{
	Use:   "create-fga-model",
	Short: "Creates the garage openfga model",
	Long:  `Creates the garage openfga model, creating the store first when no store ID is given`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fgaModelOptions{}
		opts.apiURL, _ = cmd.Flags().GetString("fga-api-url")
		opts.apiToken, _ = cmd.Flags().GetString("fga-api-token")
		opts.storeID, _ = cmd.Flags().GetString("fga-store-id")
		opts.verbose, _ = cmd.Flags().GetBool("verbose")
		format, _ := cmd.Flags().GetString("format")
		configMapResource, _ := cmd.Flags().GetString("store-k8s-configmap-resource")
		kubeconfigPath, _ := cmd.Flags().GetString("kubeconfig")

		result, err := createModel(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if configMapResource != "" {
			if err := updateConfigMap(cmd.Context(), kubeconfigPath, configMapResource, result.StoreID, result.ModelID); err != nil {
				return fmt.Errorf("failed to update configmap: %w", err)
			}
			cmd.Printf("ConfigMap %s updated successfully\n", configMapResource)
		}

		return writeFgaModelResult(cmd.OutOrStdout(), format, result)
	},
}

func init() {
	rootCmd.AddCommand(createFgaModelCmd)

	createFgaModelCmd.Flags().String("fga-api-url", "", "The openfga API URL")
	createFgaModelCmd.Flags().String("fga-api-token", "", "The openfga API token")
	createFgaModelCmd.Flags().String("fga-store-id", "", "The openfga store to create the model in, if empty one will be created")
	createFgaModelCmd.Flags().String("format", "text", "Output format (text or json)")
	createFgaModelCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	createFgaModelCmd.Flags().String("store-k8s-configmap-resource", "", "The configmap resource to store the FGA Store ID and Model ID, format: namespace/name")
	createFgaModelCmd.Flags().String("kubeconfig", "", "Path to the kubeconfig file (optional, defaults to in-cluster config)")
	_ = createFgaModelCmd.MarkFlagRequired("fga-api-url")
	_ = createFgaModelCmd.MarkFlagRequired("fga-api-token")
}

func writeFgaModelResult(out io.Writer, format string, result *fgaModelResult) error {
	if format == "json" {
		if err := json.NewEncoder(out).Encode(result); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}

	fmt.Fprintf(out, "Created model: %s\n", result.ModelID)
	if result.StoreCreated {
		fmt.Fprintf(out, "Created store: %s\n", result.StoreID)
	}

	return nil
}

func createModel(ctx context.Context, opts fgaModelOptions) (*fgaModelResult, error) {
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("", logger)

	scheme, host, err := parseURL(opts.apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	fgaClient := openfga.NewClient(
		openfga.NewConfig(scheme, host, opts.storeID, opts.apiToken, "", opts.verbose, tracer, monitor, logger),
	)
	result := &fgaModelResult{StoreID: opts.storeID}

	if result.StoreID == "" {
		result.StoreID, err = fgaClient.CreateStore(ctx, StoreName)
		if err != nil {
			return nil, fmt.Errorf("failed to create store: %w", err)
		}

		result.StoreCreated = true
		fgaClient.SetStoreID(ctx, result.StoreID)
	}

	authzModel := authorization.NewAuthorizationModelProvider("v0").GetModel()
	if authzModel == nil {
		return nil, fmt.Errorf("failed to compile authorization model")
	}

	result.ModelID, err = fgaClient.WriteModel(
		ctx,
		&client.ClientWriteAuthorizationModelRequest{
			TypeDefinitions: authzModel.TypeDefinitions,
			SchemaVersion:   authzModel.SchemaVersion,
			Conditions:      authzModel.Conditions,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write model: %w", err)
	}

	return result, nil
}

func parseURL(s string) (string, string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", "", err
	}
	return u.Scheme, u.Host, nil
}

func updateConfigMap(ctx context.Context, kubeconfigPath, configMapResource, storeId, modelId string) error {
	parts := strings.Split(configMapResource, "/")
	if len(parts) != 2 {
		return fmt.Errorf("invalid configmap resource format: %s, expected namespace/name", configMapResource)
	}
	namespace, name := parts[0], parts[1]

	var config *rest.Config
	var err error

	if kubeconfigPath != "" {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	} else {
		config, err = rest.InClusterConfig()
		if err != nil {
			// Fallback to kubeconfig if in-cluster fails (e.g. running locally without flag)
			loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
			configOverrides := &clientcmd.ConfigOverrides{}
			kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)
			config, err = kubeConfig.ClientConfig()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if k8serrors.IsNotFound(err) {
			// Try to Create it
			cm = &corev1.ConfigMap{
				ObjectMeta: metav1.ObjectMeta{
					Name:      name,
					Namespace: namespace,
				},
				Data: map[string]string{
					"OPENFGA_STORE_ID":               storeId,
					"OPENFGA_AUTHORIZATION_MODEL_ID": modelId,
				},
			}
			_, err = clientset.CoreV1().ConfigMaps(namespace).Create(ctx, cm, metav1.CreateOptions{})
			if err != nil {
				return fmt.Errorf("failed to create configmap %s: %w", configMapResource, err)
			}
			return nil
		}
		return fmt.Errorf("failed to get configmap %s: %w", configMapResource, err)
	}

	if cm.Data == nil {
		cm.Data = make(map[string]string)
	}

	cm.Data["OPENFGA_STORE_ID"] = storeId
	cm.Data["OPENFGA_AUTHORIZATION_MODEL_ID"] = modelId

	_, err = clientset.CoreV1().ConfigMaps(namespace).Update(ctx, cm, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("failed to update configmap %s: %w", configMapResource, err)
	}

	return nil
}
