package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/pkg/logging"
)

const (
	managedByLabel       = "app.kubernetes.io/managed-by"
	managedByValue       = "serverconf"
	serverNameAnnotation = "serverconf.giantswarm.io/server-name"
	configMapDataKey     = "config.yaml"
	configMapPrefix      = "serverconf-"
)

// Kubernetes stores each document in a ConfigMap. The ConfigMap's
// resourceVersion is the document revision.
type Kubernetes struct {
	client    client.Client
	namespace string
}

// NewKubernetes returns a store that uses c in namespace.
func NewKubernetes(c client.Client, namespace string) *Kubernetes {
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	return &Kubernetes{client: c, namespace: namespace}
}

// NewKubernetesFromKubeconfig builds a client from kubeconfig, or from the
// standard controller-runtime lookup when kubeconfig is empty.
func NewKubernetesFromKubeconfig(kubeconfig, namespace string) (*Kubernetes, error) {
	var (
		restConfig *rest.Config
		err        error
	)
	if kubeconfig != "" {
		restConfig, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	} else {
		restConfig, err = ctrl.GetConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load Kubernetes configuration: %w", err)
	}

	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))

	c, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return NewKubernetes(c, namespace), nil
}

// ConfigMapName returns the ConfigMap holding the named server's document.
func ConfigMapName(serverName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(serverName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	base := strings.Trim(b.String(), "-")
	if len(base) > 200 {
		base = base[:200]
	}
	if base == "" {
		return configMapPrefix + shortHash(serverName)
	}
	return configMapPrefix + base + "-" + shortHash(serverName)
}

// Load implements Store.
func (k *Kubernetes) Load(ctx context.Context, serverName string) (*document.ServerConfig, error) {
	cm := &corev1.ConfigMap{}
	key := client.ObjectKey{Namespace: k.namespace, Name: ConfigMapName(serverName)}
	if err := k.client.Get(ctx, key, cm); err != nil {
		if apierrors.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ConfigMap %s: %w", key, err)
	}

	doc, err := decodeConfigMap(cm)
	if err != nil {
		return nil, err
	}
	if doc.ServerName != serverName {
		return nil, fmt.Errorf("ConfigMap %s holds server %q, not %q", key, doc.ServerName, serverName)
	}
	return doc, nil
}

// Save implements Store.
func (k *Kubernetes) Save(ctx context.Context, doc *document.ServerConfig) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode server %s: %w", doc.ServerName, err)
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:            ConfigMapName(doc.ServerName),
			Namespace:       k.namespace,
			ResourceVersion: doc.Revision,
			Labels:          map[string]string{managedByLabel: managedByValue},
			Annotations:     map[string]string{serverNameAnnotation: doc.ServerName},
		},
		Data: map[string]string{configMapDataKey: string(data)},
	}

	if doc.Revision == "" {
		err = k.client.Create(ctx, cm)
		if apierrors.IsAlreadyExists(err) {
			return ErrConflict
		}
	} else {
		err = k.client.Update(ctx, cm)
		if apierrors.IsConflict(err) || apierrors.IsNotFound(err) {
			return ErrConflict
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write ConfigMap %s/%s: %w", cm.Namespace, cm.Name, err)
	}

	doc.Revision = cm.ResourceVersion
	logging.Debug("Storage", "Saved server %s to ConfigMap %s/%s (resourceVersion %s)", doc.ServerName, cm.Namespace, cm.Name, cm.ResourceVersion)
	return nil
}

// List implements Store.
func (k *Kubernetes) List(ctx context.Context) ([]string, error) {
	list := &corev1.ConfigMapList{}
	if err := k.client.List(ctx, list,
		client.InNamespace(k.namespace),
		client.MatchingLabels{managedByLabel: managedByValue},
	); err != nil {
		return nil, fmt.Errorf("failed to list ConfigMaps: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for i := range list.Items {
		if name := list.Items[i].Annotations[serverNameAnnotation]; name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close implements Store.
func (k *Kubernetes) Close() error { return nil }

func decodeConfigMap(cm *corev1.ConfigMap) (*document.ServerConfig, error) {
	raw, ok := cm.Data[configMapDataKey]
	if !ok {
		return nil, fmt.Errorf("ConfigMap %s/%s has no %s key", cm.Namespace, cm.Name, configMapDataKey)
	}
	var doc document.ServerConfig
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode ConfigMap %s/%s: %w", cm.Namespace, cm.Name, err)
	}
	doc.Revision = cm.ResourceVersion
	return &doc, nil
}
