package ledgerrepo

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/pkg/errorspkg"
)

// Entities are stored as hashes under users:{id} and accounts:{name}.
// All mutations run as Lua scripts so the check-and-apply is atomic per key.
const (
	walletKeyPrefix  = "users:"
	accountKeyPrefix = "accounts:"
)

var addBalanceScript = redis.NewScript(`
local bal = redis.call('HGET', KEYS[1], 'balance')
if not bal then
	if ARGV[2] == '1' and tonumber(ARGV[1]) > 0 then
		redis.call('HSET', KEYS[1], 'balance', ARGV[1])
		return {'ok', ARGV[1]}
	end
	return {'missing', '0'}
end
local new = tonumber(bal) + tonumber(ARGV[1])
if new < 0 then
	return {'short', bal}
end
redis.call('HSET', KEYS[1], 'balance', tostring(new))
return {'ok', tostring(new)}
`)

var grantBonusScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	redis.call('HSET', KEYS[1], 'balance', ARGV[2], 'lastLogin', ARGV[1])
	return {'first', ARGV[2]}
end
if redis.call('HGET', KEYS[1], 'lastLogin') == ARGV[1] then
	return {'claimed', redis.call('HGET', KEYS[1], 'balance')}
end
local new = tonumber(redis.call('HGET', KEYS[1], 'balance')) + tonumber(ARGV[2])
redis.call('HSET', KEYS[1], 'balance', tostring(new), 'lastLogin', ARGV[1])
return {'granted', tostring(new)}
`)

var createAccountScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'owner', ARGV[1], 'password', ARGV[2], 'balance', ARGV[3], 'createdAt', ARGV[4])
return 1
`)

// RepoRedis is a balance store backed by a Redis hash per entity.
type RepoRedis struct {
	client *redis.Client
}

// NewRepoRedis returns a Redis balance store using the given client.
func NewRepoRedis(client *redis.Client) *RepoRedis {
	return &RepoRedis{client: client}
}

// GetWallet returns the wallet of the given user.
func (r *RepoRedis) GetWallet(ctx context.Context, userID string) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	fields, err := r.client.HGetAll(ctx, walletKeyPrefix+userID).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Wallet{}, errorspkg.ErrStoreUnavailable
	}

	if len(fields) == 0 {
		return domain.Wallet{}, domain.ErrNoWalletData
	}

	balance, err := strconv.ParseInt(fields["balance"], 10, 64)
	if err != nil {
		l.Error().Err(err).Str("user_id", userID).Msg("corrupt wallet balance")
		return domain.Wallet{}, errorspkg.ErrStoreUnavailable
	}

	return domain.Wallet{
		UserID:        userID,
		Balance:       balance,
		LastBonusDate: fields["lastLogin"],
	}, nil
}

// AddWalletBalance applies delta to the user's balance. A credit to an
// absent wallet creates it.
func (r *RepoRedis) AddWalletBalance(ctx context.Context, userID string, delta int64) (domain.Wallet, error) {
	status, balance, err := r.runAddBalance(ctx, walletKeyPrefix+userID, delta, true)
	if err != nil {
		return domain.Wallet{}, err
	}

	switch status {
	case "missing":
		return domain.Wallet{}, domain.ErrNoWalletData
	case "short":
		return domain.Wallet{}, domain.ErrInsufficientFunds
	}

	return domain.Wallet{UserID: userID, Balance: balance}, nil
}

// GrantBonus credits the daily bonus unless it was already granted for date.
func (r *RepoRedis) GrantBonus(ctx context.Context, userID, date string, amount int64) (domain.Wallet, domain.BonusStatus, error) {
	l := zerolog.Ctx(ctx)

	res, err := grantBonusScript.Run(ctx, r.client,
		[]string{walletKeyPrefix + userID},
		date, strconv.FormatInt(amount, 10),
	).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Wallet{}, "", errorspkg.ErrStoreUnavailable
	}

	status, balance, err := decodeScriptReply(res)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Wallet{}, "", errorspkg.ErrStoreUnavailable
	}

	w := domain.Wallet{UserID: userID, Balance: balance, LastBonusDate: date}

	switch status {
	case "first":
		return w, domain.BonusFirstTime, nil
	case "claimed":
		return w, domain.BonusAlreadyClaimed, nil
	default:
		return w, domain.BonusGranted, nil
	}
}

// GetAccount returns the account with the given name.
func (r *RepoRedis) GetAccount(ctx context.Context, name string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	fields, err := r.client.HGetAll(ctx, accountKeyPrefix+name).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	if len(fields) == 0 {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	balance, err := strconv.ParseInt(fields["balance"], 10, 64)
	if err != nil {
		l.Error().Err(err).Str("account", name).Msg("corrupt account balance")
		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["createdAt"])
	if err != nil {
		l.Error().Err(err).Str("account", name).Msg("corrupt account createdAt")
		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	return domain.Account{
		Name:           name,
		Owner:          fields["owner"],
		HashedPassword: fields["password"],
		Balance:        balance,
		CreatedAt:      createdAt,
	}, nil
}

// CreateAccount stores a new account unless the name is taken.
func (r *RepoRedis) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	created, err := createAccountScript.Run(ctx, r.client,
		[]string{accountKeyPrefix + account.Name},
		account.Owner,
		account.HashedPassword,
		strconv.FormatInt(account.Balance, 10),
		account.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	if created == 0 {
		return domain.Account{}, domain.ErrAccountExists
	}

	return account, nil
}

// AddAccountBalance applies delta to the account balance.
func (r *RepoRedis) AddAccountBalance(ctx context.Context, name string, delta int64) (domain.Account, error) {
	status, _, err := r.runAddBalance(ctx, accountKeyPrefix+name, delta, false)
	if err != nil {
		return domain.Account{}, err
	}

	switch status {
	case "missing":
		return domain.Account{}, domain.ErrAccountNotFound
	case "short":
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	return r.GetAccount(ctx, name)
}

func (r *RepoRedis) runAddBalance(ctx context.Context, key string, delta int64, createOnCredit bool) (string, int64, error) {
	l := zerolog.Ctx(ctx)

	create := "0"
	if createOnCredit {
		create = "1"
	}

	res, err := addBalanceScript.Run(ctx, r.client,
		[]string{key},
		strconv.FormatInt(delta, 10), create,
	).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return "", 0, errorspkg.ErrStoreUnavailable
	}

	status, balance, err := decodeScriptReply(res)
	if err != nil {
		l.Error().Err(err).Send()
		return "", 0, errorspkg.ErrStoreUnavailable
	}

	return status, balance, nil
}

// decodeScriptReply decodes the {status, balance} pair returned by the
// mutation scripts.
func decodeScriptReply(res interface{}) (string, int64, error) {
	pair, ok := res.([]interface{})
	if !ok || len(pair) != 2 {
		return "", 0, errorspkg.ErrInternal
	}

	status, ok := pair[0].(string)
	if !ok {
		return "", 0, errorspkg.ErrInternal
	}

	raw, ok := pair[1].(string)
	if !ok {
		return "", 0, errorspkg.ErrInternal
	}

	balance, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, err
	}

	return status, balance, nil
}
