package repository

import (
	"context"
	"testing"
	"time"

	"PCQuote/internal/model"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fl(v float64) *float64 { return &v }

func sampleCatalog() *model.Catalog {
	return &model.Catalog{
		CPUs: []*model.CPUComponent{{
			ComponentBase: model.ComponentBase{
				ID: "cpu_amd_ryzen_5_7600", Name: "AMD Ryzen 5 7600", Brand: "AMD", Model: "Ryzen 5 7600",
				Category: model.CategoryCPU,
				Sources:  map[string]string{"buildcores_id": "bc-7600", "pcpart_id": "amd_ryzen_5_7600"},
				Meta: model.ComponentMeta{
					CreatedFrom:   []model.SourceTag{model.SourceBuildCores, model.SourcePCPart},
					ConflictFlags: []string{},
					QualityScore:  0.9,
				},
				NormalizedKey: "amd ryzen 5 7600",
			},
			CPUSpec: model.CPUSpec{Socket: "AM5", TDPW: fl(65), MemorySupport: model.MemorySupport{Types: []string{"DDR5"}}},
		}},
		RAM: []*model.RAMComponent{{
			ComponentBase: model.ComponentBase{ID: "ram_corsair_vengeance", Category: model.CategoryRAM, Meta: model.ComponentMeta{ConflictFlags: []string{}}},
			RAMSpec:       model.RAMSpec{Type: "DDR5", SpeedMTS: fl(6000)},
		}},
		Compat: &model.CompatibilityMeta{
			GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Sockets:     map[string]model.SocketCount{"AM5": {CPUs: 1}},
			FormFactors: map[string]model.FormFactorCount{},
		},
	}
}

func TestCatalogFileRepository_RoundTrip(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fs := afero.NewMemMapFs()
	repo := NewCatalogFileRepository(fs, "/out", "", logger)
	ctx := context.Background()

	require.NoError(t, repo.WriteCatalog(ctx, sampleCatalog()))

	for _, name := range []string{FileCPUs, FileGPUs, FileMotherboards, FilePSUs, FileCases, FileRAM, FileMemory, FileCoolers, FileFans, FileCompatibility} {
		ok, err := afero.Exists(fs, "/out/"+name+".json")
		require.NoError(t, err)
		assert.True(t, ok, name)
	}

	// 空类别写成 []
	gpus, err := afero.ReadFile(fs, "/out/gpus.json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(gpus))

	ram, err := afero.ReadFile(fs, "/out/ram.json")
	require.NoError(t, err)
	memory, err := afero.ReadFile(fs, "/out/memory.json")
	require.NoError(t, err)
	assert.Equal(t, ram, memory)

	got, err := repo.ReadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, got.CPUs, 1)
	assert.Equal(t, "cpu_amd_ryzen_5_7600", got.CPUs[0].ID)
	assert.Equal(t, "AM5", got.CPUs[0].Socket)
	assert.Equal(t, 65.0, *got.CPUs[0].TDPW)
	assert.Equal(t, "bc-7600", got.CPUs[0].Sources["buildcores_id"])
	require.Len(t, got.RAM, 1)
	assert.NotNil(t, got.GPUs)
	assert.NotNil(t, got.Fans)
	require.NotNil(t, got.Compat)
	assert.True(t, got.Compat.GeneratedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestCatalogFileRepository_Deterministic(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	a := NewCatalogFileRepository(fs, "/a", ".json", logger)
	b := NewCatalogFileRepository(fs, "/b", ".json", logger)
	require.NoError(t, a.WriteCatalog(ctx, sampleCatalog()))
	require.NoError(t, b.WriteCatalog(ctx, sampleCatalog()))

	for _, name := range []string{FileCPUs, FileRAM, FileCompatibility} {
		x, err := afero.ReadFile(fs, "/a/"+name+".json")
		require.NoError(t, err)
		y, err := afero.ReadFile(fs, "/b/"+name+".json")
		require.NoError(t, err)
		assert.Equal(t, x, y, name)
	}
}

func TestCatalogFileRepository_ReadMissing(t *testing.T) {
	logger, _ := test.NewNullLogger()
	repo := NewCatalogFileRepository(afero.NewMemMapFs(), "/nothing", ".json", logger)
	_, err := repo.ReadCatalog(context.Background())
	assert.ErrorIs(t, err, model.ErrCatalogNotLoaded)
}

func TestCatalogFileRepository_MemoryAliasFallback(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/cpus.json", []byte(`[]`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/out/memory.json", []byte(`[{"id":"ram_x","type":"DDR4","speed_mts":3200}]`), 0o644))

	got, err := NewCatalogFileRepository(fs, "/out", ".json", logger).ReadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, got.RAM, 1)
	assert.Equal(t, "ram_x", got.RAM[0].ID)
	assert.Equal(t, "DDR4", got.RAM[0].Type)
}

func TestCatalogFileRepository_BrokenFile(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/cpus.json", []byte(`{broken`), 0o644))

	_, err := NewCatalogFileRepository(fs, "/out", ".json", logger).ReadCatalog(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrCatalogNotLoaded)
}
