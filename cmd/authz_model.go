// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
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
	"k8s.io/client-go/util/retry"

	"github.com/canonical/compliance-service/internal/authorization"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/openfga"
	"github.com/canonical/compliance-service/internal/tracing"
)

const fgaStoreName = "compliance-service"

// authzModelRef identifies the store and model the server must be started with.
type authzModelRef struct {
	StoreID string `json:"store_id"`
	ModelID string `json:"model_id"`
}

func (r authzModelRef) env() map[string]string {
	return map[string]string{
		"OPENFGA_STORE_ID":               r.StoreID,
		"OPENFGA_AUTHORIZATION_MODEL_ID": r.ModelID,
	}
}

var createFgaModelCmd = &cobra.Command{
	Use:   "create-fga-model",
	Short: "Write the client membership model to OpenFGA",
	Long: `Write the client membership model (owner, admin, auditor, viewer) to OpenFGA.

A store named compliance-service is created unless --fga-store-id is given.
The resulting ids can be written to a Kubernetes ConfigMap consumed as
environment by the serve command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiURL, _ := cmd.Flags().GetString("fga-api-url")
		apiToken, _ := cmd.Flags().GetString("fga-api-token")
		storeID, _ := cmd.Flags().GetString("fga-store-id")
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")
		configMap, _ := cmd.Flags().GetString("store-k8s-configmap-resource")
		kubeconfig, _ := cmd.Flags().GetString("kubeconfig")

		ref, err := writeAuthzModel(cmd.Context(), apiURL, apiToken, storeID, verbose)
		if err != nil {
			return err
		}

		if configMap != "" {
			if err := publishAuthzModel(cmd.Context(), kubeconfig, configMap, ref); err != nil {
				return fmt.Errorf("failed to update configmap: %w", err)
			}
			cmd.PrintErrf("ConfigMap %s updated\n", configMap)
		}

		switch format {
		case "json":
			return json.NewEncoder(cmd.OutOrStdout()).Encode(ref)
		case "env":
			for k, v := range ref.env() {
				cmd.Printf("export %s=%s\n", k, v)
			}
		default:
			if storeID == "" {
				cmd.Printf("Created store: %s\n", ref.StoreID)
			}
			cmd.Printf("Created model: %s\n", ref.ModelID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(createFgaModelCmd)

	createFgaModelCmd.Flags().String("fga-api-url", "", "OpenFGA API URL, e.g. http://localhost:8080")
	createFgaModelCmd.Flags().String("fga-api-token", "", "OpenFGA preshared key")
	createFgaModelCmd.Flags().String("fga-store-id", "", "Existing store to write the model to, a new one is created when empty")
	createFgaModelCmd.Flags().String("format", "text", "Output format (text, json or env)")
	createFgaModelCmd.Flags().BoolP("verbose", "v", false, "Log OpenFGA requests")
	createFgaModelCmd.Flags().String("store-k8s-configmap-resource", "", "ConfigMap receiving the store and model ids, as namespace/name")
	createFgaModelCmd.Flags().String("kubeconfig", "", "Path to a kubeconfig, in-cluster config is tried first when empty")
	_ = createFgaModelCmd.MarkFlagRequired("fga-api-url")
	_ = createFgaModelCmd.MarkFlagRequired("fga-api-token")
}

func writeAuthzModel(ctx context.Context, apiURL, apiToken, storeID string, verbose bool) (authzModelRef, error) {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return authzModelRef{}, fmt.Errorf("invalid OpenFGA url %q", apiURL)
	}

	logger := logging.NewNoopLogger()
	if verbose {
		logger = logging.NewLogger("debug")
	}

	fga := openfga.NewClient(&openfga.Config{
		ApiScheme: u.Scheme,
		ApiHost:   u.Host,
		StoreID:   storeID,
		ApiToken:  apiToken,
		Debug:     verbose,
		Tracer:    tracing.NewNoopTracer(),
		Monitor:   monitoring.NewNoopMonitor(fgaStoreName, logger),
		Logger:    logger,
	})

	if storeID == "" {
		if storeID, err = fga.CreateStore(ctx, fgaStoreName); err != nil {
			return authzModelRef{}, fmt.Errorf("failed to create store: %w", err)
		}
		fga.SetStoreID(ctx, storeID)
	}

	model := authorization.NewAuthorizationModelProvider("v0").GetModel()

	modelID, err := fga.WriteModel(ctx, &client.ClientWriteAuthorizationModelRequest{
		TypeDefinitions: model.TypeDefinitions,
		SchemaVersion:   model.SchemaVersion,
		Conditions:      model.Conditions,
	})
	if err != nil {
		return authzModelRef{}, fmt.Errorf("failed to write model: %w", err)
	}

	return authzModelRef{StoreID: storeID, ModelID: modelID}, nil
}

func kubeConfig(path string) (*rest.Config, error) {
	if path != "" {
		return clientcmd.BuildConfigFromFlags("", path)
	}

	if cfg, err := rest.InClusterConfig(); err == nil {
		return cfg, nil
	}

	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(),
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
}

// publishAuthzModel creates or merges the ids into the namespace/name ConfigMap, retrying on write conflicts.
func publishAuthzModel(ctx context.Context, kubeconfig, resource string, ref authzModelRef) error {
	namespace, name, ok := strings.Cut(resource, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid configmap resource %q, expected namespace/name", resource)
	}

	cfg, err := kubeConfig(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	configMaps := clientset.CoreV1().ConfigMaps(namespace)

	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		cm, err := configMaps.Get(ctx, name, metav1.GetOptions{})

		if k8serrors.IsNotFound(err) {
			cm = &corev1.ConfigMap{
				ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
				Data:       ref.env(),
			}
			_, err = configMaps.Create(ctx, cm, metav1.CreateOptions{})
			return err
		}

		if err != nil {
			return err
		}

		if cm.Data == nil {
			cm.Data = make(map[string]string)
		}

		for k, v := range ref.env() {
			cm.Data[k] = v
		}

		_, err = configMaps.Update(ctx, cm, metav1.UpdateOptions{})
		return err
	})
}
