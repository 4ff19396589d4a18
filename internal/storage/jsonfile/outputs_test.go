package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_sync/internal/domain"
	"catalog_sync/internal/storage/jsonfile"
)

func TestOutputs_Write(t *testing.T) {
	dir := t.TempDir()
	out := jsonfile.NewOutputs(map[string]string{
		domain.OutputPriceList: filepath.Join(dir, "price_list.json"),
		domain.OutputGrouped:   "",
	})
	ctx := context.Background()

	require.NoError(t, out.Write(ctx, domain.OutputPriceList, map[string][]string{"rings": {"¥1,000"}}))
	b, err := os.ReadFile(filepath.Join(dir, "price_list.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rings\": [\n    \"¥1,000\"\n  ]\n}\n", string(b))

	require.NoError(t, out.Write(ctx, domain.OutputGrouped, []int{1}), "empty path disables the output")
	require.Error(t, out.Write(ctx, "unknown", nil))
}
