package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"slpece/internal/config"
	"slpece/internal/model/auth"
	"slpece/internal/pkg/mongodb"
	authRepo "slpece/internal/repository/auth"
	"slpece/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts in the configured store",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user (mongo or file store, per auth.user_store)",
	RunE:  runUserCreate,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE:  runUserList,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd, userListCmd)

	createFlags := userCreateCmd.Flags()
	createFlags.StringP("username", "u", "", "username (3-50 characters)")
	createFlags.StringP("password", "P", "", "password (at least 6 characters, default: $SLPECE_INIT_PASSWORD)")
	_ = userCreateCmd.MarkFlagRequired("username")

	listFlags := userListCmd.Flags()
	listFlags.Int64("page", 1, "page number")
	listFlags.Int64("page-size", 50, "page size")
}

// userStore 命令行用到的用户仓库能力
type userStore interface {
	service.UserRepository
	List(ctx context.Context, page, pageSize int64) ([]*auth.User, int64, error)
}

// openUserStore 按 auth.user_store 打开用户仓库
func openUserStore(cfg *config.Config) (userStore, func(), error) {
	switch cfg.Auth.UserStore {
	case "file":
		repo, err := authRepo.NewFileUserRepo(cfg.Auth.UsersFile)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	default:
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect mongo: %w", err)
		}
		if err := mongodb.EnsureIndexes(client.Database()); err != nil {
			_ = client.Close(context.Background())
			return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		closeFn := func() { _ = client.Close(context.Background()) }
		return authRepo.NewUserRepo(client.Database()), closeFn, nil
	}
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	username, _ := cmd.Flags().GetString("username")
	pwd, _ := cmd.Flags().GetString("password")
	if pwd == "" {
		pwd = os.Getenv("SLPECE_INIT_PASSWORD")
	}

	store, closeFn, err := openUserStore(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	// 只用到注册逻辑，不需要真实密钥与吊销存储
	svc := service.NewAuthService(store, nil, "cli", time.Minute)
	result, err := svc.Register(ctx, username, pwd)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "User created: id=%s username=%s store=%s\n",
		result.UserID, result.Username, storeName(cfg))
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	page, _ := cmd.Flags().GetInt64("page")
	pageSize, _ := cmd.Flags().GetInt64("page-size")

	store, closeFn, err := openUserStore(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	users, total, err := store.List(ctx, page, pageSize)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tCREATED AT")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Username, u.CreatedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "total: %d\n", total)
	return w.Flush()
}

func storeName(cfg *config.Config) string {
	if cfg.Auth.UserStore == "" {
		return "mongo"
	}
	return cfg.Auth.UserStore
}
