package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/kozaktomas/companion-backend/internal/constants"
	"github.com/kozaktomas/companion-backend/internal/database"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Manage stored face images",
}

var imagesImportCmd = &cobra.Command{
	Use:   "import <folder-path>",
	Short: "Bulk-import face images from a folder",
	Long: `Import every image file from a folder as face images of one person.
The file name (without extension) becomes the image description.

Example:
  companion-backend images import /photos/tom --name "Tom" --relation "grandson"`,
	Args: cobra.ExactArgs(1),
	RunE: runImagesImport,
}

func init() {
	rootCmd.AddCommand(imagesCmd)
	imagesCmd.AddCommand(imagesImportCmd)

	imagesImportCmd.Flags().String("name", "", "Name of the person on the images (required)")
	imagesImportCmd.Flags().String("relation", "", "Relation of the person to the user (required)")
	imagesImportCmd.MarkFlagRequired("name")
	imagesImportCmd.MarkFlagRequired("relation")
}

// isImageFile checks if a file has a supported image extension
func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".heic": true,
		".webp": true,
	}
	return supported[ext]
}

// collectImageFiles lists image files directly inside the folder (non-recursive).
func collectImageFiles(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("cannot access folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("cannot read folder %s: %w", folder, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && isImageFile(e.Name()) {
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	return files, nil
}

func runImagesImport(cmd *cobra.Command, args []string) error {
	folder := args[0]
	name := mustGetString(cmd, "name")
	relation := mustGetString(cmd, "relation")

	files, err := collectImageFiles(folder)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No image files found")
		return nil
	}

	cfg := config.Load()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	bar := progressbar.Default(int64(len(files)), "Importing images")
	ctx := context.Background()

	var imported, failed int
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("\nSkipping %s: %v\n", path, err)
			failed++
			bar.Add(1)
			continue
		}

		description := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		img := database.StoredImage{
			Description: description,
			Data:        data,
			Filename:    strings.ReplaceAll(description, " ", "_") + constants.ImageExtension,
			Name:        name,
			Relation:    relation,
		}
		if err := store.StoreImage(ctx, img); err != nil {
			fmt.Printf("\nFailed to store %s: %v\n", path, err)
			failed++
			bar.Add(1)
			continue
		}

		imported++
		bar.Add(1)
	}

	fmt.Printf("\nImported %d images (%d failed) for %s (%s)\n", imported, failed, name, relation)
	return nil
}
