/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// ObjectAPI is the subset of the S3 client used by Cache.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	client ObjectAPI
	bucket string
	// prefix is prepended to every object key, e.g. "replaycache"
	prefix string
	// gzip indicates whether cache entries should be gzipped in Set and
	// gunzipped in Get. If true, object keys get a ".gz" suffix.
	gzip   bool
	logger zerolog.Logger

	// httpcache.Cache has no context parameter; this one is used for every
	// request
	ctx context.Context
}

// New returns a Cache backed by client. Most callers want
// NewFromDefaultConfig instead.
func New(ctx context.Context, client ObjectAPI, bucket string, prefix string,
	gzipIn bool, logger zerolog.Logger) *Cache {

	return &Cache{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		gzip:   gzipIn,
		logger: logger.With().Str("component", "s3cache").Logger(),
		ctx:    ctx,
	}
}

// NewFromDefaultConfig builds a Cache using the default AWS configuration
// sources (environment variables, shared configuration and credentials
// files) and verifies the bucket is reachable.
func NewFromDefaultConfig(ctx context.Context, bucket string, prefix string,
	gzipIn bool, logger zerolog.Logger) (*Cache, error) {

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3cache: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	if _, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		return nil, fmt.Errorf("s3cache: head bucket failed for %s: %w", bucket,
			err)
	}

	return New(ctx, client, bucket, prefix, gzipIn, logger), nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		// no such key just indicates a cache miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logger.Warn().Err(err).Str("key", objKey).Msg("get failed")
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := io.Reader(resp.Body)
	if c.gzip {
		gr, err := gzip.NewReader(rdr)
		if err != nil {
			c.logger.Warn().Err(err).Str("key", objKey).
				Msg("failed to open compressed object")
			return nil, false
		}
		defer gr.Close()
		rdr = gr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", objKey).Msg("failed to read object")
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	objKey := c.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			c.logger.Warn().Err(err).Str("key", objKey).Msg("failed to gzip data")
			return
		}
		if err := gw.Close(); err != nil {
			c.logger.Warn().Err(err).Str("key", objKey).
				Msg("failed to close gzip writer")
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.client.PutObject(c.ctx, input); err != nil {
		c.logger.Warn().Err(err).Str("key", objKey).Msg("put failed")
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	_, err := c.client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", objKey).Msg("delete failed")
	}
}

func (c *Cache) objectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("%v/%v", c.prefix, hex.EncodeToString(h.Sum(nil)))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}
