package main

import (
	"fmt"
	"os"
	"strings"

	"vfs-go/internal/app"
	"vfs-go/internal/config"
	"vfs-go/internal/content"
	"vfs-go/internal/database"
	"vfs-go/internal/encryption"
	"vfs-go/internal/model"
	"vfs-go/internal/vfs"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// subjectRef builds a subject Ref from the --subject-type/--subject-id flags.
func subjectRef(cmd *cobra.Command) (model.Ref, error) {
	sType, _ := cmd.Flags().GetString("subject-type")
	sID, _ := cmd.Flags().GetString("subject-id")
	if sType == "" || sID == "" {
		return model.Ref{}, fmt.Errorf("--subject-type and --subject-id are required")
	}
	return model.Ref{Type: sType, ID: sID}, nil
}

// promptPassphrase reads a passphrase from the terminal without echo.
func promptPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

var rootCmd = &cobra.Command{
	Use:   "vfs",
	Short: "Virtual file system metadata tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:       %s\n", cfg.LogDir)
		fmt.Printf("Database:      %s (%s)\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Content Store: %s (%s)\n", cfg.Content.Type, cfg.Content.Name)
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the metadata database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		db, err := database.NewDatabaseFromConfig(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if err := db.MigrateUp(); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}

		fmt.Println("Database schema is up to date.")
		return nil
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		db, err := database.NewDatabaseFromConfig(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if sdb, ok := db.(*database.SQLiteDatabase); ok {
			fmt.Printf("Database: %s\n", sdb.Path())
		}

		if err := db.CheckMigrations(); err != nil {
			fmt.Printf("Schema out of date: %v\n", err)
			return nil
		}

		fmt.Println("Schema is at the latest version.")
		return nil
	},
}

// volume command
var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Manage volumes",
}

var volumeCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a volume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.Service().CreateVolume(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Created volume %s (%s)\n", v.Name, v.ID)
		return nil
	},
}

var volumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		volumes, err := a.Service().ListVolumes()
		if err != nil {
			return err
		}

		if len(volumes) == 0 {
			fmt.Println("No volumes.")
			return nil
		}

		for _, v := range volumes {
			fmt.Printf("%s  %s\n", v.ID, v.Name)
		}
		return nil
	},
}

var volumeRmCmd = &cobra.Command{
	Use:   "rm VOLUME_ID",
	Short: "Delete a volume and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteVolume(args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted volume %s\n", args[0])
		return nil
	},
}

// folder command
var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		volumeID, _ := cmd.Flags().GetString("volume")
		parentID, _ := cmd.Flags().GetString("parent")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.Service().CreateFolder(vfs.CreateFolderParams{
			VolumeID: volumeID,
			ParentID: parentID,
			Name:     args[0],
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created folder %s (%s)\n", f.Name, f.ID)
		return nil
	},
}

var folderLsCmd = &cobra.Command{
	Use:   "ls [PARENT_ID]",
	Short: "List folders under a parent, or volume roots with --volume",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		volumeID, _ := cmd.Flags().GetString("volume")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var folders []*model.Folder
		switch {
		case len(args) == 1:
			folders, err = a.Service().SubFolders(args[0])
		case volumeID != "":
			folders, err = a.Service().RootFolders(volumeID)
		default:
			return fmt.Errorf("provide a PARENT_ID or --volume")
		}
		if err != nil {
			return err
		}

		if len(folders) == 0 {
			fmt.Println("No folders.")
			return nil
		}

		for _, f := range folders {
			fmt.Printf("%s  %s\n", f.ID, f.Name)
		}
		return nil
	},
}

var folderPathCmd = &cobra.Command{
	Use:   "path FOLDER_ID",
	Short: "Print a folder's full path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Service().Path(args[0])
		if err != nil {
			return err
		}

		fmt.Println(p)
		return nil
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm FOLDER_ID",
	Short: "Soft-delete a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().SoftDeleteFolder(args[0]); err != nil {
			return err
		}

		fmt.Printf("Folder %s marked deleted\n", args[0])
		return nil
	},
}

var folderRestoreCmd = &cobra.Command{
	Use:   "restore FOLDER_ID",
	Short: "Restore a soft-deleted folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RestoreFolder(args[0]); err != nil {
			return err
		}

		fmt.Printf("Folder %s restored\n", args[0])
		return nil
	},
}

var folderDestroyCmd = &cobra.Command{
	Use:   "destroy FOLDER_ID",
	Short: "Permanently remove a folder and its subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DestroyFolder(args[0]); err != nil {
			return err
		}

		fmt.Printf("Folder %s destroyed\n", args[0])
		return nil
	},
}

// item command
var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage items and revisions",
}

var itemCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an item",
	RunE: func(cmd *cobra.Command, args []string) error {
		volumeID, _ := cmd.Flags().GetString("volume")
		if volumeID == "" {
			return fmt.Errorf("--volume is required")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.Service().CreateItem(volumeID)
		if err != nil {
			return err
		}

		fmt.Printf("Created item %s\n", item.ID)
		return nil
	},
}

var itemReviseCmd = &cobra.Command{
	Use:   "revise ITEM_ID NAME",
	Short: "Create a new revision of an item",
	Long: `Create a new revision. With --file, the file's bytes are stored in the
configured content store under a fresh blob key. With --contents-type and
--contents-id, the revision references externally managed contents instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, name := args[0], args[1]
		filePath, _ := cmd.Flags().GetString("file")
		contentsType, _ := cmd.Flags().GetString("contents-type")
		contentsID, _ := cmd.Flags().GetString("contents-id")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		creator, err := subjectRef(cmd)
		if err != nil {
			return err
		}

		var contents model.Ref
		switch {
		case filePath != "":
			key := uuid.New().String()
			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat file: %w", err)
			}

			if err := a.Store().Put(key, f, info.Size()); err != nil {
				return fmt.Errorf("storing content: %w", err)
			}
			contents = model.Ref{Type: content.TypeBlob, ID: key}
		case contentsType != "" && contentsID != "":
			contents = model.Ref{Type: contentsType, ID: contentsID}
		default:
			return fmt.Errorf("provide --file or both --contents-type and --contents-id")
		}

		r, err := a.Service().CreateRevision(itemID, creator, contents, name, nil)
		if err != nil {
			return err
		}

		fmt.Printf("Created revision %d of item %s (%s)\n", r.Number, itemID, r.ID)
		return nil
	},
}

var itemCatCmd = &cobra.Command{
	Use:   "cat REVISION_ID",
	Short: "Write a revision's contents to stdout",
	Long: `Write a revision's contents to stdout. Only blob contents held by the
configured content store can be read; when the store is encrypted, the key
passphrase is prompted for first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.Service().GetRevision(args[0])
		if err != nil {
			return err
		}
		if r.Contents.Type != content.TypeBlob {
			return fmt.Errorf("revision contents are %s/%s, held by an external provider",
				r.Contents.Type, r.Contents.ID)
		}

		if _, ok := a.Store().(*content.EncryptedStore); ok {
			passphrase, err := promptPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			if err := a.Unlock(passphrase); err != nil {
				return err
			}
		}

		if err := a.Store().Get(r.Contents.ID, os.Stdout); err != nil {
			return fmt.Errorf("reading content: %w", err)
		}
		return nil
	},
}

var itemRevisionsCmd = &cobra.Command{
	Use:   "revisions ITEM_ID",
	Short: "List an item's revisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		revisions, err := a.Service().Revisions(args[0])
		if err != nil {
			return err
		}

		if len(revisions) == 0 {
			fmt.Println("No revisions.")
			return nil
		}

		for _, r := range revisions {
			fmt.Printf("#%-4d  %s  %s  %s/%s\n",
				r.Number,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Name,
				r.Contents.Type,
				r.Contents.ID,
			)
		}
		return nil
	},
}

var itemLinkCmd = &cobra.Command{
	Use:   "link ITEM_ID FOLDER_ID",
	Short: "Add an item to a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().AddItemToFolder(args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Linked item %s to folder %s\n", args[0], args[1])
		return nil
	},
}

var itemUnlinkCmd = &cobra.Command{
	Use:   "unlink ITEM_ID FOLDER_ID",
	Short: "Remove an item from a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RemoveItemFromFolder(args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Unlinked item %s from folder %s\n", args[0], args[1])
		return nil
	},
}

var itemRmCmd = &cobra.Command{
	Use:   "rm ITEM_ID",
	Short: "Soft-delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().SoftDeleteItem(args[0]); err != nil {
			return err
		}

		fmt.Printf("Item %s marked deleted\n", args[0])
		return nil
	},
}

var itemRestoreCmd = &cobra.Command{
	Use:   "restore ITEM_ID",
	Short: "Restore a soft-deleted item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().RestoreItem(args[0]); err != nil {
			return err
		}

		fmt.Printf("Item %s restored\n", args[0])
		return nil
	},
}

var itemDestroyCmd = &cobra.Command{
	Use:   "destroy ITEM_ID",
	Short: "Permanently remove an item and its revisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DestroyItem(args[0]); err != nil {
			return err
		}

		fmt.Printf("Item %s destroyed\n", args[0])
		return nil
	},
}

// comment command
var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage revision comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add REVISION_ID MESSAGE",
	Short: "Comment on a revision",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		creator, err := subjectRef(cmd)
		if err != nil {
			return err
		}

		c, err := a.Service().CreateComment(args[0], creator, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Comment %s added\n", c.ID)
		return nil
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list REVISION_ID",
	Short: "List comments on a revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		comments, err := a.Service().Comments(args[0])
		if err != nil {
			return err
		}

		if len(comments) == 0 {
			fmt.Println("No comments.")
			return nil
		}

		for _, c := range comments {
			fmt.Printf("%s  %s/%s  %s\n",
				c.CreatedAt.Format("2006-01-02 15:04:05"),
				c.Creator.Type,
				c.Creator.ID,
				c.Message,
			)
		}
		return nil
	},
}

// access commands
var grantCmd = &cobra.Command{
	Use:   "grant FOLDER_ID AUTHORIZATION...",
	Short: "Grant a subject authorizations on a folder",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		subject, err := subjectRef(cmd)
		if err != nil {
			return err
		}

		if _, err := a.Service().Grant(args[0], subject, args[1:]...); err != nil {
			return err
		}

		fmt.Printf("Granted %s on folder %s to %s/%s\n",
			strings.Join(args[1:], ", "), args[0], subject.Type, subject.ID)
		return nil
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke FOLDER_ID [AUTHORIZATION]",
	Short: "Revoke a subject's authorizations on a folder",
	Long: `With an AUTHORIZATION argument, revokes just that authorization.
Without one, revokes the subject's whole permission on the folder.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		subject, err := subjectRef(cmd)
		if err != nil {
			return err
		}

		if len(args) == 2 {
			if err := a.Service().RevokeAuthorization(args[0], subject, args[1]); err != nil {
				return err
			}
			fmt.Printf("Revoked %s on folder %s from %s/%s\n", args[1], args[0], subject.Type, subject.ID)
			return nil
		}

		if err := a.Service().RevokeAll(args[0], subject); err != nil {
			return err
		}
		fmt.Printf("Revoked all access on folder %s from %s/%s\n", args[0], subject.Type, subject.ID)
		return nil
	},
}

var accessCmd = &cobra.Command{
	Use:   "access FOLDER_ID",
	Short: "Show a subject's authorizations on a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		subject, err := subjectRef(cmd)
		if err != nil {
			return err
		}

		names, err := a.Service().Authorizations(args[0], subject)
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Println("No access.")
			return nil
		}

		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var visibleCmd = &cobra.Command{
	Use:   "visible",
	Short: "List folders a subject can see",
	RunE: func(cmd *cobra.Command, args []string) error {
		authName, _ := cmd.Flags().GetString("authorization")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		subject, err := subjectRef(cmd)
		if err != nil {
			return err
		}

		var folders []*model.Folder
		if authName != "" {
			folders, err = a.Service().FoldersAuthorizedFor(subject, authName)
		} else {
			folders, err = a.Service().FoldersVisibleTo(subject)
		}
		if err != nil {
			return err
		}

		if len(folders) == 0 {
			fmt.Println("No folders.")
			return nil
		}

		for _, f := range folders {
			fmt.Printf("%s  %s\n", f.ID, f.Name)
		}
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return fmt.Errorf("creating encryptor: %w", err)
		}

		if enc.IsConfigured() {
			return fmt.Errorf("encryption keys already exist")
		}

		passphrase, err := promptPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// db subcommands
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)

	// volume subcommands
	volumeCmd.AddCommand(volumeCreateCmd)
	volumeCmd.AddCommand(volumeListCmd)
	volumeCmd.AddCommand(volumeRmCmd)

	// folder subcommands
	folderCmd.AddCommand(folderCreateCmd)
	folderCreateCmd.Flags().String("volume", "", "Volume ID (inherited from parent when omitted)")
	folderCreateCmd.Flags().String("parent", "", "Parent folder ID (omit for a root folder)")
	folderCmd.AddCommand(folderLsCmd)
	folderLsCmd.Flags().String("volume", "", "Volume ID to list root folders of")
	folderCmd.AddCommand(folderPathCmd)
	folderCmd.AddCommand(folderRmCmd)
	folderCmd.AddCommand(folderRestoreCmd)
	folderCmd.AddCommand(folderDestroyCmd)

	// item subcommands
	itemCmd.AddCommand(itemCreateCmd)
	itemCreateCmd.Flags().String("volume", "", "Volume ID")
	itemCmd.AddCommand(itemReviseCmd)
	itemReviseCmd.Flags().String("file", "", "File whose bytes become the revision contents")
	itemReviseCmd.Flags().String("contents-type", "", "Externally managed contents type")
	itemReviseCmd.Flags().String("contents-id", "", "Externally managed contents ID")
	addSubjectFlags(itemReviseCmd)
	itemCmd.AddCommand(itemCatCmd)
	itemCmd.AddCommand(itemRevisionsCmd)
	itemCmd.AddCommand(itemLinkCmd)
	itemCmd.AddCommand(itemUnlinkCmd)
	itemCmd.AddCommand(itemRmCmd)
	itemCmd.AddCommand(itemRestoreCmd)
	itemCmd.AddCommand(itemDestroyCmd)

	// comment subcommands
	commentCmd.AddCommand(commentAddCmd)
	addSubjectFlags(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)

	// access commands
	addSubjectFlags(grantCmd)
	addSubjectFlags(revokeCmd)
	addSubjectFlags(accessCmd)
	addSubjectFlags(visibleCmd)
	visibleCmd.Flags().String("authorization", "", "Restrict to folders carrying this authorization")

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(grantCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(accessCmd)
	rootCmd.AddCommand(visibleCmd)
	rootCmd.AddCommand(keysCmd)
}

func addSubjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("subject-type", "", "Subject (or creator) type, e.g. user")
	cmd.Flags().String("subject-id", "", "Subject (or creator) ID")
}
