package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
)

func newFakeKubernetes(t *testing.T) (*Kubernetes, client.Client) {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, corev1.AddToScheme(scheme))
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	return NewKubernetes(c, "serverconf"), c
}

func TestKubernetesContract(t *testing.T) {
	s, _ := newFakeKubernetes(t)
	testStoreContract(t, s)
}

func TestConfigMapName(t *testing.T) {
	name := ConfigMapName("cocoMDS1")
	assert.Regexp(t, `^serverconf-cocomds1-[0-9a-f]{8}$`, name)
	assert.NotEqual(t, ConfigMapName("CocoMDS1"), ConfigMapName("cocoMDS1"))
	assert.Regexp(t, `^serverconf-[0-9a-f]{8}$`, ConfigMapName("///"))
}

func TestKubernetesObjects(t *testing.T) {
	s, c := newFakeKubernetes(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleDocument("cocoMDS1")))

	cm := &corev1.ConfigMap{}
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: "serverconf", Name: ConfigMapName("cocoMDS1")}, cm))
	assert.Equal(t, managedByValue, cm.Labels[managedByLabel])
	assert.Equal(t, "cocoMDS1", cm.Annotations[serverNameAnnotation])
	assert.Contains(t, cm.Data[configMapDataKey], "serverName: cocoMDS1")

	// Unmanaged ConfigMaps are not listed.
	require.NoError(t, c.Create(ctx, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "unrelated", Namespace: "serverconf"},
	}))
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cocoMDS1"}, names)
}

func TestNewKubernetesDefaultNamespace(t *testing.T) {
	s := NewKubernetes(nil, "")
	assert.Equal(t, "default", s.namespace)
}
